package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postProductStock(t *testing.T, payload productStockRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/app/api/stock/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = authenticateRequest(t, sessionManager, req, 1)
	w := httptest.NewRecorder()
	StockResource(w, req)
	return w
}

func TestProductStockClosingComputedServerSide(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	_, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	w := postProductStock(t, productStockRequest{
		EntryDate:    "2026-08-14",
		ProductName:  "Sambar Powder",
		OpeningStock: 10,
		Production:   25,
		Sales:        8,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created productStockResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ClosingStock != 27 {
		t.Fatalf("expected closing stock 27, got %v", created.ClosingStock)
	}
}

func TestProductStockMonthFilter(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	for _, entry := range []productStockRequest{
		{EntryDate: "2026-07-31", ProductName: "Sambar Powder", OpeningStock: 5, Production: 10, Sales: 2},
		{EntryDate: "2026-08-01", ProductName: "Sambar Powder", OpeningStock: 13, Production: 20, Sales: 6},
		{EntryDate: "2026-08-15", ProductName: "Rasam Powder", OpeningStock: 4, Production: 12, Sales: 3},
	} {
		if w := postProductStock(t, entry); w.Code != http.StatusCreated {
			t.Fatalf("seed entry: expected status 201, got %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/app/api/stock/products?month=2026-08", nil)
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	StockResource(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var listed []productStockResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 entries for August, got %d", len(listed))
	}
	for _, entry := range listed {
		if !strings.HasPrefix(entry.EntryDate, "2026-08") {
			t.Fatalf("expected only August entries, got %q", entry.EntryDate)
		}
	}
}

func TestProductStockRejectsBadMonth(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	req := httptest.NewRequest(http.MethodGet, "/app/api/stock/products?month=August", nil)
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	StockResource(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRawMaterialStockClosingComputedServerSide(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	body, _ := json.Marshal(rawMaterialStockRequest{
		EntryDate:      "2026-08-14",
		IngredientName: "Coriander Seeds",
		Opening:        2.5,
		Purchased:      5,
		Used:           1.25,
	})
	req := httptest.NewRequest(http.MethodPost, "/app/api/stock/raw-materials", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	StockResource(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created rawMaterialStockResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Closing != 6.25 {
		t.Fatalf("expected closing 6.25, got %v", created.Closing)
	}
}

func TestStockRejectsBadDate(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	_, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	w := postProductStock(t, productStockRequest{
		EntryDate:   "14/08/2026",
		ProductName: "Sambar Powder",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad date, got %d", w.Code)
	}
}

func TestStockUnknownRegisterNotFound(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	req := httptest.NewRequest(http.MethodGet, "/app/api/stock/warehouses", nil)
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	StockResource(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
