package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "github.com/MarquisOgre/Spices/internal/log"
	"github.com/MarquisOgre/Spices/models"
)

type ingredientRequest struct {
	Name       string  `json:"name"`
	PricePerKg float64 `json:"price_per_kg"`
	Brand      string  `json:"brand"`
}

type ingredientResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	PricePerKg float64   `json:"price_per_kg"`
	Brand      string    `json:"brand,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var errDuplicateIngredientName = errors.New("an ingredient with that name already exists")

// IngredientResource handles REST-style interactions for the master price list.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "ingredient request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	if _, ok := currentUserID(r); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/ingredients")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case "upsert":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		upsertIngredient(w, r)
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid ingredient identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	ingredientID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showIngredient(w, r, ingredientID)
	case http.MethodPut:
		updateIngredient(w, r, ingredientID)
	case http.MethodDelete:
		deleteIngredient(w, r, ingredientID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var results []models.MasterIngredient
	if err := database.WithContext(ctx).Order("name asc").Find(&results).Error; err != nil {
		applog.Error(ctx, "failed to list ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredients")
		return
	}

	responses := make([]ingredientResponse, 0, len(results))
	for _, ingredient := range results {
		responses = append(responses, projectIngredient(ingredient))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var ingredient models.MasterIngredient
	if err := database.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load ingredient", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredient(ingredient))
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload, err := decodeIngredientPayload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ingredient := models.MasterIngredient{
		Name:       payload.Name,
		PricePerKg: payload.PricePerKg,
		Brand:      strings.TrimSpace(payload.Brand),
	}

	if taken, err := ingredientNameTaken(ctx, database, payload.Name, 0); err != nil {
		applog.Error(ctx, "failed to check ingredient name", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create ingredient")
		return
	} else if taken {
		writeJSONError(w, http.StatusConflict, errDuplicateIngredientName.Error())
		return
	}

	if err := database.WithContext(ctx).Create(&ingredient).Error; err != nil {
		applog.Error(ctx, "failed to create ingredient", "error", err)
		writeJSONError(w, http.StatusBadRequest, "unable to create ingredient")
		return
	}

	writeJSON(w, http.StatusCreated, projectIngredient(ingredient))
}

// updateIngredient applies price/brand changes and, when the name changed,
// performs the rename inside one transaction with a uniqueness pre-check.
// Recipe lines reference ingredients by name, so the rename also rewrites
// them; nothing is ever deleted and reinserted.
func updateIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var existing models.MasterIngredient
	if err := database.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load ingredient for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	payload, err := decodeIngredientPayload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if payload.Name != existing.Name {
			taken, err := ingredientNameTaken(ctx, tx, payload.Name, existing.ID)
			if err != nil {
				return err
			}
			if taken {
				return errDuplicateIngredientName
			}
			if err := tx.WithContext(ctx).Model(&models.RecipeIngredient{}).
				Where("ingredient_name = ?", existing.Name).
				Update("ingredient_name", payload.Name).Error; err != nil {
				return fmt.Errorf("rewrite recipe lines: %w", err)
			}
		}

		updates := map[string]any{
			"name":         payload.Name,
			"price_per_kg": payload.PricePerKg,
			"brand":        strings.TrimSpace(payload.Brand),
		}
		return tx.WithContext(ctx).Model(&existing).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, errDuplicateIngredientName) {
			writeJSONError(w, http.StatusConflict, errDuplicateIngredientName.Error())
			return
		}
		applog.Error(ctx, "failed to update ingredient", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update ingredient")
		return
	}

	if err := database.WithContext(ctx).First(&existing, id).Error; err != nil {
		applog.Error(ctx, "failed to reload updated ingredient", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredient(existing))
}

func deleteIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	if err := database.WithContext(ctx).Delete(&models.MasterIngredient{}, id).Error; err != nil {
		applog.Error(ctx, "failed to delete ingredient", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete ingredient")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// upsertIngredient creates or updates a master record by name. This is the
// bulk import path: repeated imports of the same sheet converge instead of
// failing on the unique index.
func upsertIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload, err := decodeIngredientPayload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ingredient, created, err := UpsertMasterIngredient(ctx, database, payload.Name, payload.PricePerKg, payload.Brand)
	if err != nil {
		applog.Error(ctx, "failed to upsert ingredient", "error", err, "name", payload.Name)
		writeJSONError(w, http.StatusInternalServerError, "unable to save ingredient")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, projectIngredient(ingredient))
}

// UpsertMasterIngredient updates the record matching name or creates it. The
// bool result reports whether a new row was inserted. Shared with the CSV
// import command.
func UpsertMasterIngredient(ctx context.Context, db *gorm.DB, name string, pricePerKg float64, brand string) (models.MasterIngredient, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MasterIngredient{}, false, errors.New("ingredient name is required")
	}
	if pricePerKg < 0 {
		return models.MasterIngredient{}, false, errors.New("price per kg must not be negative")
	}

	var ingredient models.MasterIngredient
	err := db.WithContext(ctx).Where("name = ?", name).First(&ingredient).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ingredient = models.MasterIngredient{Name: name, PricePerKg: pricePerKg, Brand: strings.TrimSpace(brand)}
		if err := db.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return models.MasterIngredient{}, false, err
		}
		return ingredient, true, nil
	case err != nil:
		return models.MasterIngredient{}, false, err
	}

	updates := map[string]any{"price_per_kg": pricePerKg}
	if strings.TrimSpace(brand) != "" {
		updates["brand"] = strings.TrimSpace(brand)
	}
	if err := db.WithContext(ctx).Model(&ingredient).Updates(updates).Error; err != nil {
		return models.MasterIngredient{}, false, err
	}
	return ingredient, false, nil
}

func ingredientNameTaken(ctx context.Context, db *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&models.MasterIngredient{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func decodeIngredientPayload(r *http.Request) (ingredientRequest, error) {
	var payload ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return ingredientRequest{}, errors.New("invalid request payload")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return ingredientRequest{}, errors.New("ingredient name is required")
	}
	if payload.PricePerKg < 0 {
		return ingredientRequest{}, errors.New("price per kg must not be negative")
	}
	return payload, nil
}

func projectIngredient(ingredient models.MasterIngredient) ingredientResponse {
	return ingredientResponse{
		ID:         ingredient.ID,
		Name:       ingredient.Name,
		PricePerKg: ingredient.PricePerKg,
		Brand:      ingredient.Brand,
		CreatedAt:  ingredient.CreatedAt,
		UpdatedAt:  ingredient.UpdatedAt,
	}
}
