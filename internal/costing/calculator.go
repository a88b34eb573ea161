package costing

import (
	"fmt"

	"github.com/MarquisOgre/Spices/models"
)

// CostResult carries the cost figures for one recipe at its base batch size.
type CostResult struct {
	RawMaterialCost float64  `json:"raw_material_cost"`
	FinalCost       float64  `json:"final_cost"`
	Unresolved      []string `json:"unresolved,omitempty"`
}

// LineCost prices a single ingredient line against the master list. The
// second return value is false when the ingredient has no master record, in
// which case the cost is zero.
func LineCost(line models.RecipeIngredient, master []models.MasterIngredient) (float64, bool, error) {
	kg, err := ToCanonicalMass(line.Quantity, line.Unit)
	if err != nil {
		return 0, false, fmt.Errorf("line %q: %w", line.IngredientName, err)
	}

	pricePerKg, ok := ResolvePricePerKg(line.IngredientName, master)
	if !ok {
		return 0, false, nil
	}
	return kg * pricePerKg, true, nil
}

// RecipeCost sums the recipe's ingredient lines against the master list and
// adds the per-batch overheads. Summation is order-independent and an empty
// line list costs zero. No rounding is applied; display formatting belongs to
// callers.
func RecipeCost(recipe models.Recipe, master []models.MasterIngredient) (CostResult, error) {
	result := CostResult{}
	for _, line := range recipe.Ingredients {
		cost, resolved, err := LineCost(line, master)
		if err != nil {
			return CostResult{}, err
		}
		if !resolved {
			result.Unresolved = append(result.Unresolved, line.IngredientName)
			continue
		}
		result.RawMaterialCost += cost
	}

	result.FinalCost = result.RawMaterialCost + recipe.Overheads
	return result, nil
}
