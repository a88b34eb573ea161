package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "github.com/MarquisOgre/Spices/internal/log"
	"github.com/MarquisOgre/Spices/models"
)

type pricingRequest struct {
	RecipeName   string  `json:"recipe_name"`
	QuantityType string  `json:"quantity_type"`
	Price        float64 `json:"price"`
}

type pricingUpdateRequest struct {
	Price *float64 `json:"price"`
}

type pricingResponse struct {
	ID           uint      `json:"id"`
	RecipeName   string    `json:"recipe_name"`
	QuantityType string    `json:"quantity_type"`
	Price        float64   `json:"price"`
	IsEnabled    bool      `json:"is_enabled"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PricingResource manages the per-pack-size price list used when taking
// orders. Each recipe/pack-size pair appears at most once.
func PricingResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "pricing request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	if _, ok := currentUserID(r); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/pricing")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listPricing(w, r)
		case http.MethodPost:
			createPricing(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid pricing identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}
	pricingID := uint(idValue)

	if len(segments) > 1 {
		if segments[1] == "toggle" && r.Method == http.MethodPost {
			togglePricing(w, r, pricingID)
			return
		}
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		updatePricing(w, r, pricingID)
	case http.MethodDelete:
		deletePricing(w, r, pricingID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := database.WithContext(ctx).Order("recipe_name asc, quantity_type asc")
	if recipe := strings.TrimSpace(r.URL.Query().Get("recipe")); recipe != "" {
		query = query.Where("recipe_name = ?", recipe)
	}
	if strings.TrimSpace(r.URL.Query().Get("enabled")) == "true" {
		query = query.Where("is_enabled = ?", true)
	}

	var rows []models.RecipePricing
	if err := query.Find(&rows).Error; err != nil {
		applog.Error(ctx, "failed to list pricing", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load pricing")
		return
	}

	responses := make([]pricingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, projectPricing(row))
	}
	writeJSON(w, http.StatusOK, responses)
}

func createPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload pricingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	payload.RecipeName = strings.TrimSpace(payload.RecipeName)
	payload.QuantityType = strings.TrimSpace(payload.QuantityType)
	if payload.RecipeName == "" || payload.QuantityType == "" {
		writeJSONError(w, http.StatusBadRequest, "recipe name and quantity type are required")
		return
	}
	if payload.Price < 0 {
		writeJSONError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	row := models.RecipePricing{
		RecipeName:   payload.RecipeName,
		QuantityType: payload.QuantityType,
		Price:        payload.Price,
		IsEnabled:    true,
	}
	if err := database.WithContext(ctx).Create(&row).Error; err != nil {
		applog.Error(ctx, "failed to create pricing", "error", err)
		writeJSONError(w, http.StatusConflict, "pricing for this recipe and pack size already exists")
		return
	}
	writeJSON(w, http.StatusCreated, projectPricing(row))
}

func updatePricing(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var payload pricingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Price == nil || *payload.Price < 0 {
		writeJSONError(w, http.StatusBadRequest, "price must be zero or greater")
		return
	}

	row, ok := loadPricing(w, r, id)
	if !ok {
		return
	}
	if err := database.WithContext(ctx).Model(&row).Update("price", *payload.Price).Error; err != nil {
		applog.Error(ctx, "failed to update pricing", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update pricing")
		return
	}
	row.Price = *payload.Price
	writeJSON(w, http.StatusOK, projectPricing(row))
}

func togglePricing(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, ok := loadPricing(w, r, id)
	if !ok {
		return
	}
	if err := database.WithContext(ctx).Model(&row).Update("is_enabled", !row.IsEnabled).Error; err != nil {
		applog.Error(ctx, "failed to toggle pricing", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update pricing")
		return
	}
	row.IsEnabled = !row.IsEnabled
	writeJSON(w, http.StatusOK, projectPricing(row))
}

func deletePricing(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	if err := database.WithContext(ctx).Delete(&models.RecipePricing{}, id).Error; err != nil {
		applog.Error(ctx, "failed to delete pricing", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete pricing")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func loadPricing(w http.ResponseWriter, r *http.Request, id uint) (models.RecipePricing, bool) {
	ctx := r.Context()
	var row models.RecipePricing
	if err := database.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return models.RecipePricing{}, false
		}
		applog.Error(ctx, "failed to load pricing", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load pricing")
		return models.RecipePricing{}, false
	}
	return row, true
}

func projectPricing(row models.RecipePricing) pricingResponse {
	return pricingResponse{
		ID:           row.ID,
		RecipeName:   row.RecipeName,
		QuantityType: row.QuantityType,
		Price:        row.Price,
		IsEnabled:    row.IsEnabled,
		UpdatedAt:    row.UpdatedAt,
	}
}
