package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MarquisOgre/Spices/internal/costing"
	applog "github.com/MarquisOgre/Spices/internal/log"
	"github.com/MarquisOgre/Spices/models"
)

type indentRequest struct {
	// Recipe identifiers mapped to the number of batches to produce.
	Quantities map[string]int `json:"quantities"`
}

type indentRowView struct {
	IngredientName string             `json:"ingredient_name"`
	PerRecipe      map[string]float64 `json:"per_recipe"`
	TotalWeight    float64            `json:"total_weight"`
	DisplayWeight  string             `json:"display_weight"`
	TotalCost      float64            `json:"total_cost"`
}

type indentView struct {
	RecipeNames []string        `json:"recipe_names"`
	Ingredients []indentRowView `json:"ingredients"`
	GrandTotal  float64         `json:"grand_total"`
	Unresolved  []string        `json:"unresolved,omitempty"`
}

// Indent aggregates raw material demand across the requested recipe batches.
// Hidden recipes are skipped even when the caller names them.
func Indent(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "indent request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	if _, ok := currentUserID(r); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var payload indentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(payload.Quantities) == 0 {
		writeJSONError(w, http.StatusBadRequest, "quantities are required")
		return
	}

	quantities := make(map[uint]int, len(payload.Quantities))
	ids := make([]uint, 0, len(payload.Quantities))
	for key, qty := range payload.Quantities {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "recipe identifiers must be numeric")
			return
		}
		quantities[uint(id)] = qty
		ids = append(ids, uint(id))
	}

	var recipes []models.Recipe
	err := database.WithContext(ctx).
		Preload("Ingredients").
		Where("id IN ?", ids).
		Where("is_hidden = ?", false).
		Find(&recipes).Error
	if err != nil {
		applog.Error(ctx, "failed to load recipes for indent", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to build indent")
		return
	}

	master, err := loadMasterList(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load master ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to build indent")
		return
	}

	report, err := costing.BuildIndent(recipes, quantities, master)
	if err != nil {
		if errors.Is(err, costing.ErrInvalidUnit) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		applog.Error(ctx, "failed to build indent", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to build indent")
		return
	}

	view := indentView{
		RecipeNames: report.RecipeNames,
		Ingredients: make([]indentRowView, 0, len(report.Ingredients)),
		GrandTotal:  report.GrandTotal,
		Unresolved:  report.Unresolved,
	}
	for _, row := range report.Ingredients {
		view.Ingredients = append(view.Ingredients, indentRowView{
			IngredientName: row.Name,
			PerRecipe:      row.PerRecipe,
			TotalWeight:    row.TotalWeight,
			DisplayWeight:  costing.FormatWeight(row.TotalWeight),
			TotalCost:      row.TotalCost,
		})
	}

	applog.Debug(ctx, "indent built", "recipes", len(report.RecipeNames), "ingredients", len(report.Ingredients))
	writeJSON(w, http.StatusOK, view)
}
