package costing

import (
	"fmt"
	"math"
	"sort"

	"github.com/MarquisOgre/Spices/models"
)

// IngredientDemand is the aggregated requirement for one ingredient across
// every selected recipe. TotalWeight stays in the lines' original units for
// display; only the cost math is canonicalized to kilograms.
type IngredientDemand struct {
	Name        string             `json:"name"`
	TotalWeight float64            `json:"total_weight"`
	TotalCost   float64            `json:"total_cost"`
	PerRecipe   map[string]float64 `json:"per_recipe"`
}

// IndentReport is the procurement worksheet: one row per ingredient, one
// column per selected recipe, plus a grand total. Rows and columns are sorted
// lexicographically so the report is deterministic for a given input.
type IndentReport struct {
	Ingredients []IngredientDemand `json:"ingredients"`
	RecipeNames []string           `json:"recipe_names"`
	GrandTotal  float64            `json:"grand_total"`
	Unresolved  []string           `json:"unresolved,omitempty"`
}

// BuildIndent aggregates ingredient demand for the given recipes at the
// desired batch quantities. Recipes with a quantity of zero or absent from
// the map contribute nothing and do not appear as columns. Lines whose
// ingredient is missing from the master list are charged at zero and the name
// is reported in Unresolved. An unrecognized unit aborts the whole report.
func BuildIndent(recipes []models.Recipe, quantities map[uint]int, master []models.MasterIngredient) (IndentReport, error) {
	buckets := make(map[string]*IngredientDemand)
	unresolved := make(map[string]bool)
	var recipeNames []string
	grandTotal := 0.0

	for _, recipe := range recipes {
		qty := quantities[recipe.ID]
		if qty <= 0 {
			continue
		}
		recipeNames = append(recipeNames, recipe.Name)

		for _, line := range recipe.Ingredients {
			lineWeight := line.Quantity * float64(qty)
			lineKg, err := ToCanonicalMass(lineWeight, line.Unit)
			if err != nil {
				return IndentReport{}, fmt.Errorf("recipe %q: %w", recipe.Name, err)
			}

			pricePerKg, ok := ResolvePricePerKg(line.IngredientName, master)
			if !ok {
				unresolved[line.IngredientName] = true
			}
			lineCost := lineKg * pricePerKg

			bucket, ok := buckets[line.IngredientName]
			if !ok {
				bucket = &IngredientDemand{
					Name:      line.IngredientName,
					PerRecipe: make(map[string]float64),
				}
				buckets[line.IngredientName] = bucket
			}
			bucket.TotalWeight += lineWeight
			bucket.TotalCost += lineCost
			bucket.PerRecipe[recipe.Name] += lineWeight
			grandTotal += lineCost
		}
	}

	report := IndentReport{
		Ingredients: make([]IngredientDemand, 0, len(buckets)),
		RecipeNames: recipeNames,
		GrandTotal:  grandTotal,
	}
	for _, bucket := range buckets {
		report.Ingredients = append(report.Ingredients, *bucket)
	}
	sort.Slice(report.Ingredients, func(i, j int) bool {
		return report.Ingredients[i].Name < report.Ingredients[j].Name
	})
	sort.Strings(report.RecipeNames)

	for name := range unresolved {
		report.Unresolved = append(report.Unresolved, name)
	}
	sort.Strings(report.Unresolved)

	return report, nil
}

// FormatWeight renders an indent weight the way the printable worksheet does:
// 1000 and above becomes kilograms with two decimals, anything below stays a
// rounded gram count. The 1000 boundary is load-bearing for export parity.
func FormatWeight(value float64) string {
	if value >= 1000 {
		return fmt.Sprintf("%.2f kg", value/1000)
	}
	return fmt.Sprintf("%d g", int(math.Round(value)))
}
