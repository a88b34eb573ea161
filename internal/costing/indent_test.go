package costing

import (
	"errors"
	"testing"

	"github.com/MarquisOgre/Spices/models"
)

func indentRecipes() []models.Recipe {
	sambar := models.Recipe{
		Name: "Sambar Powder",
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "Coriander Seeds", Quantity: 200, Unit: "g"},
			{IngredientName: "Red Chili", Quantity: 100, Unit: "g"},
		},
	}
	sambar.ID = 1

	rasam := models.Recipe{
		Name: "Rasam Powder",
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "Coriander Seeds", Quantity: 150, Unit: "g"},
			{IngredientName: "Cumin Seeds", Quantity: 50, Unit: "g"},
		},
	}
	rasam.ID = 2

	return []models.Recipe{sambar, rasam}
}

func findDemand(t *testing.T, report IndentReport, name string) IngredientDemand {
	t.Helper()
	for _, demand := range report.Ingredients {
		if demand.Name == name {
			return demand
		}
	}
	t.Fatalf("ingredient %q missing from report", name)
	return IngredientDemand{}
}

func TestBuildIndentAggregatesSharedIngredient(t *testing.T) {
	t.Parallel()

	report, err := BuildIndent(indentRecipes(), map[uint]int{1: 2, 2: 1}, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent returned error: %v", err)
	}

	coriander := findDemand(t, report, "Coriander Seeds")
	if !almostEqual(coriander.TotalWeight, 550) {
		t.Fatalf("Coriander TotalWeight = %v, want 550", coriander.TotalWeight)
	}
	if !almostEqual(coriander.TotalCost, 66) {
		t.Fatalf("Coriander TotalCost = %v, want 66", coriander.TotalCost)
	}
	if !almostEqual(coriander.PerRecipe["Sambar Powder"], 400) {
		t.Fatalf("Sambar contribution = %v, want 400", coriander.PerRecipe["Sambar Powder"])
	}
	if !almostEqual(coriander.PerRecipe["Rasam Powder"], 150) {
		t.Fatalf("Rasam contribution = %v, want 150", coriander.PerRecipe["Rasam Powder"])
	}
}

func TestBuildIndentGrandTotalMatchesRowSum(t *testing.T) {
	t.Parallel()

	report, err := BuildIndent(indentRecipes(), map[uint]int{1: 3, 2: 2}, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent returned error: %v", err)
	}

	sum := 0.0
	for _, demand := range report.Ingredients {
		sum += demand.TotalCost
	}
	if !almostEqual(report.GrandTotal, sum) {
		t.Fatalf("GrandTotal = %v, row sum = %v", report.GrandTotal, sum)
	}
}

func TestBuildIndentExcludesZeroQuantityRecipes(t *testing.T) {
	t.Parallel()

	report, err := BuildIndent(indentRecipes(), map[uint]int{1: 2}, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent returned error: %v", err)
	}

	if len(report.RecipeNames) != 1 || report.RecipeNames[0] != "Sambar Powder" {
		t.Fatalf("RecipeNames = %v, want [Sambar Powder]", report.RecipeNames)
	}
	for _, demand := range report.Ingredients {
		if _, ok := demand.PerRecipe["Rasam Powder"]; ok {
			t.Fatalf("excluded recipe appears in %q breakdown", demand.Name)
		}
		if demand.Name == "Cumin Seeds" {
			t.Fatal("ingredient used only by an excluded recipe appears in report")
		}
	}
	if !almostEqual(report.GrandTotal, (0.4*120)+(0.2*200)) {
		t.Fatalf("GrandTotal = %v, want 88", report.GrandTotal)
	}
}

func TestBuildIndentEmptySelection(t *testing.T) {
	t.Parallel()

	report, err := BuildIndent(indentRecipes(), nil, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent returned error: %v", err)
	}
	if len(report.Ingredients) != 0 || len(report.RecipeNames) != 0 || report.GrandTotal != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestBuildIndentOrderingIsDeterministic(t *testing.T) {
	t.Parallel()

	recipes := indentRecipes()
	reversed := []models.Recipe{recipes[1], recipes[0]}
	quantities := map[uint]int{1: 1, 2: 1}

	forward, err := BuildIndent(recipes, quantities, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent(forward) returned error: %v", err)
	}
	backward, err := BuildIndent(reversed, quantities, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent(backward) returned error: %v", err)
	}

	wantRows := []string{"Coriander Seeds", "Cumin Seeds", "Red Chili"}
	for i, want := range wantRows {
		if forward.Ingredients[i].Name != want || backward.Ingredients[i].Name != want {
			t.Fatalf("row %d = %q / %q, want %q", i, forward.Ingredients[i].Name, backward.Ingredients[i].Name, want)
		}
	}

	wantColumns := []string{"Rasam Powder", "Sambar Powder"}
	for i, want := range wantColumns {
		if forward.RecipeNames[i] != want || backward.RecipeNames[i] != want {
			t.Fatalf("column %d = %q / %q, want %q", i, forward.RecipeNames[i], backward.RecipeNames[i], want)
		}
	}
}

func TestBuildIndentUnresolvedIngredientChargedZero(t *testing.T) {
	t.Parallel()

	recipe := models.Recipe{
		Name: "House Blend",
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "Asafoetida", Quantity: 25, Unit: "g"},
			{IngredientName: "Coriander Seeds", Quantity: 100, Unit: "g"},
		},
	}
	recipe.ID = 9

	report, err := BuildIndent([]models.Recipe{recipe}, map[uint]int{9: 2}, spiceMasterList())
	if err != nil {
		t.Fatalf("BuildIndent returned error: %v", err)
	}

	hing := findDemand(t, report, "Asafoetida")
	if hing.TotalCost != 0 {
		t.Fatalf("unresolved ingredient cost = %v, want 0", hing.TotalCost)
	}
	if !almostEqual(hing.TotalWeight, 50) {
		t.Fatalf("unresolved ingredient weight = %v, want 50", hing.TotalWeight)
	}
	if len(report.Unresolved) != 1 || report.Unresolved[0] != "Asafoetida" {
		t.Fatalf("Unresolved = %v, want [Asafoetida]", report.Unresolved)
	}
	if !almostEqual(report.GrandTotal, 0.2*120) {
		t.Fatalf("GrandTotal = %v, want 24", report.GrandTotal)
	}
}

func TestBuildIndentRejectsInvalidUnit(t *testing.T) {
	t.Parallel()

	recipe := models.Recipe{
		Name: "Imported Mix",
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "Coriander Seeds", Quantity: 1, Unit: "lb"},
		},
	}
	recipe.ID = 4

	if _, err := BuildIndent([]models.Recipe{recipe}, map[uint]int{4: 1}, spiceMasterList()); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
}

func TestFormatWeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value float64
		want  string
	}{
		{"small stays grams", 550, "550 g"},
		{"rounds grams", 549.6, "550 g"},
		{"boundary becomes kilograms", 1000, "1.00 kg"},
		{"just under boundary stays grams", 999.4, "999 g"},
		{"large kilograms", 2345, "2.35 kg"},
		{"zero", 0, "0 g"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatWeight(tt.value); got != tt.want {
				t.Fatalf("FormatWeight(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
