package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MarquisOgre/Spices/internal/costing"
	applog "github.com/MarquisOgre/Spices/internal/log"
	"github.com/MarquisOgre/Spices/models"
)

type recipeLineRequest struct {
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}

type recipeRequest struct {
	Name         string              `json:"name"`
	Preparation  string              `json:"preparation"`
	Overheads    float64             `json:"overheads"`
	SellingPrice *float64            `json:"selling_price"`
	Calories     *float64            `json:"calories"`
	Protein      *float64            `json:"protein"`
	Fat          *float64            `json:"fat"`
	Carbs        *float64            `json:"carbs"`
	ShelfLife    string              `json:"shelf_life"`
	Storage      string              `json:"storage"`
	Ingredients  []recipeLineRequest `json:"ingredients"`
}

type recipeLineResponse struct {
	ID             uint    `json:"id"`
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}

type recipeResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Preparation  string               `json:"preparation,omitempty"`
	Overheads    float64              `json:"overheads"`
	SellingPrice float64              `json:"selling_price"`
	Calories     *float64             `json:"calories,omitempty"`
	Protein      *float64             `json:"protein,omitempty"`
	Fat          *float64             `json:"fat,omitempty"`
	Carbs        *float64             `json:"carbs,omitempty"`
	ShelfLife    string               `json:"shelf_life,omitempty"`
	Storage      string               `json:"storage,omitempty"`
	IsHidden     bool                 `json:"is_hidden"`
	Ingredients  []recipeLineResponse `json:"ingredients"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// RecipeResource handles REST-style interactions for recipes and their
// ingredient lines, plus the visibility and costing sub-resources.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "recipe request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	if _, ok := currentUserID(r); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/recipes")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}
	recipeID := uint(idValue)

	if len(segments) > 1 {
		switch segments[1] {
		case "visibility":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			toggleRecipeVisibility(w, r, recipeID)
		case "cost":
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			recipeCostView(w, r, recipeID)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, recipeID)
	case http.MethodPut:
		updateRecipe(w, r, recipeID)
	case http.MethodDelete:
		deleteRecipe(w, r, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := database.WithContext(ctx).Preload("Ingredients").Order("name asc")
	if strings.TrimSpace(r.URL.Query().Get("include_hidden")) != "true" {
		query = query.Where("is_hidden = ?", false)
	}

	var results []models.Recipe
	if err := query.Find(&results).Error; err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	responses := make([]recipeResponse, 0, len(results))
	for _, recipe := range results {
		responses = append(responses, projectRecipe(recipe))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	recipe, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(recipe))
}

// createRecipe stores a recipe with its lines. When no manual selling price
// is supplied the price is derived from the costing engine's markup rule
// against the current master list.
func createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload, err := decodeRecipePayload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	recipe := recipeFromPayload(payload)

	sellingPrice, unresolved, err := deriveSellingPrice(ctx, recipe, payload.SellingPrice)
	if err != nil {
		if errors.Is(err, costing.ErrInvalidUnit) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		applog.Error(ctx, "failed to derive selling price", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create recipe")
		return
	}
	recipe.SellingPrice = sellingPrice
	if len(unresolved) > 0 {
		applog.Warn(ctx, "recipe priced with unresolved ingredients", "recipe", recipe.Name, "unresolved", strings.Join(unresolved, ", "))
	}

	if err := database.WithContext(ctx).Create(&recipe).Error; err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusConflict, "unable to create recipe")
		return
	}

	writeJSON(w, http.StatusCreated, projectRecipe(recipe))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}

	payload, err := decodeRecipePayload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	replacement := recipeFromPayload(payload)

	sellingPrice, _, err := deriveSellingPrice(ctx, replacement, payload.SellingPrice)
	if err != nil {
		if errors.Is(err, costing.ErrInvalidUnit) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		applog.Error(ctx, "failed to derive selling price", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update recipe")
		return
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":          replacement.Name,
			"preparation":   replacement.Preparation,
			"overheads":     replacement.Overheads,
			"selling_price": sellingPrice,
			"calories":      replacement.Calories,
			"protein":       replacement.Protein,
			"fat":           replacement.Fat,
			"carbs":         replacement.Carbs,
			"shelf_life":    replacement.ShelfLife,
			"storage":       replacement.Storage,
		}
		if err := tx.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Where("recipe_id = ?", existing.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range replacement.Ingredients {
			replacement.Ingredients[i].RecipeID = existing.ID
			if err := tx.WithContext(ctx).Create(&replacement.Ingredients[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		applog.Error(ctx, "failed to update recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update recipe")
		return
	}

	updated, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(updated))
}

// deleteRecipe removes a recipe and its lines together; lines never outlive
// their recipe.
func deleteRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to delete recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toggleRecipeVisibility(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	recipe, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}

	if err := database.WithContext(ctx).Model(&recipe).Update("is_hidden", !recipe.IsHidden).Error; err != nil {
		applog.Error(ctx, "failed to toggle recipe visibility", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update recipe")
		return
	}
	recipe.IsHidden = !recipe.IsHidden
	writeJSON(w, http.StatusOK, projectRecipe(recipe))
}

func loadRecipe(w http.ResponseWriter, r *http.Request, id uint) (models.Recipe, bool) {
	ctx := r.Context()
	var recipe models.Recipe
	if err := database.WithContext(ctx).Preload("Ingredients").First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return models.Recipe{}, false
		}
		applog.Error(ctx, "failed to load recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return models.Recipe{}, false
	}
	return recipe, true
}

// deriveSellingPrice returns the manual price when one is supplied, otherwise
// the engine's recommended price for the recipe against the current master
// list. Unresolved ingredient names are returned so callers can warn.
func deriveSellingPrice(ctx context.Context, recipe models.Recipe, manual *float64) (float64, []string, error) {
	if manual != nil {
		return *manual, nil, nil
	}

	master, err := loadMasterList(ctx)
	if err != nil {
		return 0, nil, err
	}
	cost, err := costing.RecipeCost(recipe, master)
	if err != nil {
		return 0, nil, err
	}
	return costing.RecommendedPrice(cost.FinalCost), cost.Unresolved, nil
}

func loadMasterList(ctx context.Context) ([]models.MasterIngredient, error) {
	var master []models.MasterIngredient
	if err := database.WithContext(ctx).Find(&master).Error; err != nil {
		return nil, err
	}
	return master, nil
}

func recipeFromPayload(payload recipeRequest) models.Recipe {
	recipe := models.Recipe{
		Name:        payload.Name,
		Preparation: strings.TrimSpace(payload.Preparation),
		Overheads:   payload.Overheads,
		Calories:    payload.Calories,
		Protein:     payload.Protein,
		Fat:         payload.Fat,
		Carbs:       payload.Carbs,
		ShelfLife:   strings.TrimSpace(payload.ShelfLife),
		Storage:     strings.TrimSpace(payload.Storage),
	}
	for _, line := range payload.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientName: strings.TrimSpace(line.IngredientName),
			Quantity:       line.Quantity,
			Unit:           strings.TrimSpace(line.Unit),
		})
	}
	return recipe
}

func decodeRecipePayload(r *http.Request) (recipeRequest, error) {
	var payload recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return recipeRequest{}, errors.New("invalid request payload")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return recipeRequest{}, errors.New("recipe name is required")
	}
	if payload.Overheads < 0 {
		return recipeRequest{}, errors.New("overheads must not be negative")
	}
	for _, line := range payload.Ingredients {
		if strings.TrimSpace(line.IngredientName) == "" {
			return recipeRequest{}, errors.New("ingredient name is required on every line")
		}
		if line.Quantity <= 0 {
			return recipeRequest{}, errors.New("ingredient quantity must be greater than zero")
		}
		if !costing.ValidUnit(line.Unit) {
			return recipeRequest{}, errors.New("ingredient unit must be one of g, kg, ml, l")
		}
	}
	return payload, nil
}

func projectRecipe(recipe models.Recipe) recipeResponse {
	response := recipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Preparation:  recipe.Preparation,
		Overheads:    recipe.Overheads,
		SellingPrice: recipe.SellingPrice,
		Calories:     recipe.Calories,
		Protein:      recipe.Protein,
		Fat:          recipe.Fat,
		Carbs:        recipe.Carbs,
		ShelfLife:    recipe.ShelfLife,
		Storage:      recipe.Storage,
		IsHidden:     recipe.IsHidden,
		Ingredients:  make([]recipeLineResponse, 0, len(recipe.Ingredients)),
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
	}
	for _, line := range recipe.Ingredients {
		response.Ingredients = append(response.Ingredients, recipeLineResponse{
			ID:             line.ID,
			IngredientName: line.IngredientName,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
		})
	}
	return response
}
