package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarquisOgre/Spices/internal/costing"
	applog "github.com/MarquisOgre/Spices/internal/log"
)

type costLineView struct {
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Cost           float64 `json:"cost"`
	Resolved       bool    `json:"resolved"`
}

type costView struct {
	RecipeID         uint           `json:"recipe_id"`
	RecipeName       string         `json:"recipe_name"`
	Multiplier       float64        `json:"multiplier"`
	Ingredients      []costLineView `json:"ingredients"`
	RawMaterialCost  float64        `json:"raw_material_cost"`
	Overheads        float64        `json:"overheads"`
	FinalCost        float64        `json:"final_cost"`
	SellingPrice     float64        `json:"selling_price"`
	RecommendedPrice float64        `json:"recommended_price"`
	Unresolved       []string       `json:"unresolved,omitempty"`
}

// recipeCostView prices a recipe against the current master list, optionally
// scaled by a ?multiplier= query parameter. Scaling never fails: out-of-range
// multipliers fall back to a single batch.
func recipeCostView(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	recipe, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}

	multiplier := 1.0
	if raw := strings.TrimSpace(r.URL.Query().Get("multiplier")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "multiplier must be a number")
			return
		}
		multiplier = parsed
	}
	multiplier = costing.ClampMultiplier(multiplier)

	master, err := loadMasterList(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load master ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to cost recipe")
		return
	}

	cost, err := costing.RecipeCost(recipe, master)
	if err != nil {
		if errors.Is(err, costing.ErrInvalidUnit) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		applog.Error(ctx, "failed to cost recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to cost recipe")
		return
	}
	scaled := costing.Scale(recipe, cost, multiplier)

	view := costView{
		RecipeID:         recipe.ID,
		RecipeName:       recipe.Name,
		Multiplier:       scaled.Multiplier,
		Ingredients:      make([]costLineView, 0, len(scaled.Ingredients)),
		RawMaterialCost:  scaled.RawMaterialCost,
		Overheads:        recipe.Overheads * scaled.Multiplier,
		FinalCost:        scaled.FinalCost,
		SellingPrice:     scaled.SellingPrice,
		RecommendedPrice: costing.RecommendedPrice(scaled.FinalCost),
		Unresolved:       cost.Unresolved,
	}
	for _, line := range scaled.Ingredients {
		lineCost, resolved, err := costing.LineCost(line, master)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		view.Ingredients = append(view.Ingredients, costLineView{
			IngredientName: line.IngredientName,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			Cost:           lineCost,
			Resolved:       resolved,
		})
	}

	if len(cost.Unresolved) > 0 {
		applog.Warn(ctx, "recipe costed with unresolved ingredients", "recipe", recipe.Name, "unresolved", strings.Join(cost.Unresolved, ", "))
	}
	writeJSON(w, http.StatusOK, view)
}
