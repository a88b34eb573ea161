package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "github.com/MarquisOgre/Spices/internal/log"
	"github.com/MarquisOgre/Spices/models"
)

type productStockRequest struct {
	EntryDate    string  `json:"entry_date"`
	ProductName  string  `json:"product_name"`
	OpeningStock float64 `json:"opening_stock"`
	Production   float64 `json:"production"`
	Sales        float64 `json:"sales"`
}

type rawMaterialStockRequest struct {
	EntryDate      string  `json:"entry_date"`
	IngredientName string  `json:"ingredient_name"`
	Opening        float64 `json:"opening"`
	Purchased      float64 `json:"purchased"`
	Used           float64 `json:"used"`
}

type productStockResponse struct {
	ID           uint    `json:"id"`
	EntryDate    string  `json:"entry_date"`
	ProductName  string  `json:"product_name"`
	OpeningStock float64 `json:"opening_stock"`
	Production   float64 `json:"production"`
	Sales        float64 `json:"sales"`
	ClosingStock float64 `json:"closing_stock"`
}

type rawMaterialStockResponse struct {
	ID             uint    `json:"id"`
	EntryDate      string  `json:"entry_date"`
	IngredientName string  `json:"ingredient_name"`
	Opening        float64 `json:"opening"`
	Purchased      float64 `json:"purchased"`
	Used           float64 `json:"used"`
	Closing        float64 `json:"closing"`
}

const stockDateLayout = "2006-01-02"

// StockResource maintains the daily stock registers for finished products
// and raw materials. Closing balances are always computed server side, never
// trusted from the caller.
func StockResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "stock request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	if _, ok := currentUserID(r); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/stock")
	path = strings.Trim(path, "/")

	switch path {
	case "products":
		switch r.Method {
		case http.MethodGet:
			listProductStock(w, r)
		case http.MethodPost:
			recordProductStock(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "raw-materials":
		switch r.Method {
		case http.MethodGet:
			listRawMaterialStock(w, r)
		case http.MethodPost:
			recordRawMaterialStock(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		http.NotFound(w, r)
	}
}

func listProductStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := database.WithContext(ctx).Order("entry_date asc, product_name asc")
	query, ok := applyMonthFilter(w, r, query)
	if !ok {
		return
	}

	var entries []models.ProductStockEntry
	if err := query.Find(&entries).Error; err != nil {
		applog.Error(ctx, "failed to list product stock", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load stock entries")
		return
	}

	responses := make([]productStockResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, productStockResponse{
			ID:           entry.ID,
			EntryDate:    entry.EntryDate.Format(stockDateLayout),
			ProductName:  entry.ProductName,
			OpeningStock: entry.OpeningStock,
			Production:   entry.Production,
			Sales:        entry.Sales,
			ClosingStock: entry.ClosingStock,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}

func recordProductStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload productStockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	payload.ProductName = strings.TrimSpace(payload.ProductName)
	if payload.ProductName == "" {
		writeJSONError(w, http.StatusBadRequest, "product name is required")
		return
	}
	entryDate, err := time.Parse(stockDateLayout, payload.EntryDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "entry date must be YYYY-MM-DD")
		return
	}

	entry := models.ProductStockEntry{
		EntryDate:    entryDate,
		ProductName:  payload.ProductName,
		OpeningStock: payload.OpeningStock,
		Production:   payload.Production,
		Sales:        payload.Sales,
		ClosingStock: models.ProductClosingStock(payload.OpeningStock, payload.Production, payload.Sales),
	}
	if err := database.WithContext(ctx).Create(&entry).Error; err != nil {
		applog.Error(ctx, "failed to record product stock", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to record stock entry")
		return
	}

	writeJSON(w, http.StatusCreated, productStockResponse{
		ID:           entry.ID,
		EntryDate:    entry.EntryDate.Format(stockDateLayout),
		ProductName:  entry.ProductName,
		OpeningStock: entry.OpeningStock,
		Production:   entry.Production,
		Sales:        entry.Sales,
		ClosingStock: entry.ClosingStock,
	})
}

func listRawMaterialStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := database.WithContext(ctx).Order("entry_date asc, ingredient_name asc")
	query, ok := applyMonthFilter(w, r, query)
	if !ok {
		return
	}

	var entries []models.RawMaterialStockEntry
	if err := query.Find(&entries).Error; err != nil {
		applog.Error(ctx, "failed to list raw material stock", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load stock entries")
		return
	}

	responses := make([]rawMaterialStockResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, rawMaterialStockResponse{
			ID:             entry.ID,
			EntryDate:      entry.EntryDate.Format(stockDateLayout),
			IngredientName: entry.IngredientName,
			Opening:        entry.Opening,
			Purchased:      entry.Purchased,
			Used:           entry.Used,
			Closing:        entry.Closing,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}

func recordRawMaterialStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload rawMaterialStockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	payload.IngredientName = strings.TrimSpace(payload.IngredientName)
	if payload.IngredientName == "" {
		writeJSONError(w, http.StatusBadRequest, "ingredient name is required")
		return
	}
	entryDate, err := time.Parse(stockDateLayout, payload.EntryDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "entry date must be YYYY-MM-DD")
		return
	}

	entry := models.RawMaterialStockEntry{
		EntryDate:      entryDate,
		IngredientName: payload.IngredientName,
		Opening:        payload.Opening,
		Purchased:      payload.Purchased,
		Used:           payload.Used,
		Closing:        models.RawMaterialClosing(payload.Opening, payload.Purchased, payload.Used),
	}
	if err := database.WithContext(ctx).Create(&entry).Error; err != nil {
		applog.Error(ctx, "failed to record raw material stock", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to record stock entry")
		return
	}

	writeJSON(w, http.StatusCreated, rawMaterialStockResponse{
		ID:             entry.ID,
		EntryDate:      entry.EntryDate.Format(stockDateLayout),
		IngredientName: entry.IngredientName,
		Opening:        entry.Opening,
		Purchased:      entry.Purchased,
		Used:           entry.Used,
		Closing:        entry.Closing,
	})
}

// applyMonthFilter narrows a stock query to one calendar month when the
// request carries a ?month=YYYY-MM parameter.
func applyMonthFilter(w http.ResponseWriter, r *http.Request, query *gorm.DB) (*gorm.DB, bool) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		return query, true
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return nil, false
	}
	end := start.AddDate(0, 1, 0)
	return query.Where("entry_date >= ? AND entry_date < ?", start, end), true
}
