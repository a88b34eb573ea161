package costing

import (
	"math"

	"github.com/MarquisOgre/Spices/models"
)

// ScaledRecipe is a recipe projected to a desired batch size. Ingredient
// quantities keep their original units.
type ScaledRecipe struct {
	Multiplier      float64                   `json:"multiplier"`
	Ingredients     []models.RecipeIngredient `json:"ingredients"`
	RawMaterialCost float64                   `json:"raw_material_cost"`
	FinalCost       float64                   `json:"final_cost"`
	SellingPrice    float64                   `json:"selling_price"`
}

// ClampMultiplier normalizes a batch multiplier. Zero, negative, and
// non-finite values fall back to 1; a batch is never scaled to nothing.
func ClampMultiplier(multiplier float64) float64 {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier <= 0 {
		return 1
	}
	return multiplier
}

// Scale projects the recipe and its cost figures to the given batch
// multiplier. Overheads scale with the batch: the business treats them as a
// per-kilogram surcharge, so FinalCost multiplies as a whole rather than
// keeping overheads fixed. Multiplier 1 returns the inputs unchanged.
func Scale(recipe models.Recipe, cost CostResult, multiplier float64) ScaledRecipe {
	multiplier = ClampMultiplier(multiplier)

	scaled := make([]models.RecipeIngredient, len(recipe.Ingredients))
	for i, line := range recipe.Ingredients {
		line.Quantity *= multiplier
		scaled[i] = line
	}

	return ScaledRecipe{
		Multiplier:      multiplier,
		Ingredients:     scaled,
		RawMaterialCost: cost.RawMaterialCost * multiplier,
		FinalCost:       cost.FinalCost * multiplier,
		SellingPrice:    recipe.SellingPrice * multiplier,
	}
}
