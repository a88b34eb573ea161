package costing

import (
	"math"
	"testing"

	"github.com/MarquisOgre/Spices/models"
)

func sambarRecipe() models.Recipe {
	return models.Recipe{
		Name:         "Sambar Powder",
		Overheads:    50,
		SellingPrice: 148,
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "Coriander Seeds", Quantity: 200, Unit: "g"},
		},
	}
}

func TestScaleByThree(t *testing.T) {
	t.Parallel()

	recipe := sambarRecipe()
	cost, err := RecipeCost(recipe, spiceMasterList())
	if err != nil {
		t.Fatalf("RecipeCost returned error: %v", err)
	}

	scaled := Scale(recipe, cost, 3)
	if len(scaled.Ingredients) != 1 {
		t.Fatalf("expected 1 scaled ingredient, got %d", len(scaled.Ingredients))
	}
	if scaled.Ingredients[0].Quantity != 600 || scaled.Ingredients[0].Unit != "g" {
		t.Fatalf("scaled line = %v %s, want 600 g", scaled.Ingredients[0].Quantity, scaled.Ingredients[0].Unit)
	}
	if !almostEqual(scaled.FinalCost, 222) {
		t.Fatalf("FinalCost = %v, want 222", scaled.FinalCost)
	}
	if !almostEqual(scaled.SellingPrice, 444) {
		t.Fatalf("SellingPrice = %v, want 444", scaled.SellingPrice)
	}
}

func TestScaleIdentityAtOne(t *testing.T) {
	t.Parallel()

	recipe := sambarRecipe()
	cost, err := RecipeCost(recipe, spiceMasterList())
	if err != nil {
		t.Fatalf("RecipeCost returned error: %v", err)
	}

	scaled := Scale(recipe, cost, 1)
	if scaled.RawMaterialCost != cost.RawMaterialCost || scaled.FinalCost != cost.FinalCost {
		t.Fatalf("multiplier 1 changed the cost: %+v vs %+v", scaled, cost)
	}
	if scaled.SellingPrice != recipe.SellingPrice {
		t.Fatalf("SellingPrice = %v, want %v", scaled.SellingPrice, recipe.SellingPrice)
	}
	if scaled.Ingredients[0].Quantity != recipe.Ingredients[0].Quantity {
		t.Fatalf("quantity changed at multiplier 1: %v", scaled.Ingredients[0].Quantity)
	}
}

func TestScaleDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	recipe := sambarRecipe()
	cost, err := RecipeCost(recipe, spiceMasterList())
	if err != nil {
		t.Fatalf("RecipeCost returned error: %v", err)
	}

	Scale(recipe, cost, 5)
	if recipe.Ingredients[0].Quantity != 200 {
		t.Fatalf("Scale mutated the source recipe: quantity = %v", recipe.Ingredients[0].Quantity)
	}
}

func TestScaleIsLinear(t *testing.T) {
	t.Parallel()

	recipe := sambarRecipe()
	cost, err := RecipeCost(recipe, spiceMasterList())
	if err != nil {
		t.Fatalf("RecipeCost returned error: %v", err)
	}

	for _, k := range []float64{0.5, 2, 7, 12.5} {
		scaled := Scale(recipe, cost, k)
		if !almostEqual(scaled.FinalCost, cost.FinalCost*k) {
			t.Fatalf("Scale(%v).FinalCost = %v, want %v", k, scaled.FinalCost, cost.FinalCost*k)
		}
		if !almostEqual(scaled.RawMaterialCost, cost.RawMaterialCost*k) {
			t.Fatalf("Scale(%v).RawMaterialCost = %v, want %v", k, scaled.RawMaterialCost, cost.RawMaterialCost*k)
		}
	}
}

func TestClampMultiplier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value float64
		want  float64
	}{
		{"positive passes", 2.5, 2.5},
		{"zero clamps", 0, 1},
		{"negative clamps", -3, 1},
		{"nan clamps", math.NaN(), 1},
		{"positive infinity clamps", math.Inf(1), 1},
		{"negative infinity clamps", math.Inf(-1), 1},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClampMultiplier(tt.value); got != tt.want {
				t.Fatalf("ClampMultiplier(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
