package handlers

import (
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

type orderItemRequest struct {
	RecipeName   string  `json:"recipe_name"`
	QuantityType string  `json:"quantity_type"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
}

type orderRequest struct {
	CustomerName string             `json:"customer_name"`
	PhoneNumber  string             `json:"phone_number"`
	Address      string             `json:"address"`
	Items        []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	ID           uint    `json:"id"`
	RecipeName   string  `json:"recipe_name"`
	QuantityType string  `json:"quantity_type"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
}

type orderResponse struct {
	ID            uint                `json:"id"`
	CustomerName  string              `json:"customer_name"`
	PhoneNumber   string              `json:"phone_number,omitempty"`
	Address       string              `json:"address,omitempty"`
	TotalAmount   float64             `json:"total_amount"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	InvoiceNumber string              `json:"invoice_number"`
	Items         []orderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

type statusChangeRequest struct {
	Status string `json:"status"`
}

// OrderResource handles customer orders and their line items, including the
// status and payment sub-actions.
func OrderResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "order request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	if _, ok := currentUserID(r); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/orders")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listOrders(w, r)
		case http.MethodPost:
			createOrder(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid order identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}
	orderID := uint(idValue)

	if len(segments) > 1 {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch segments[1] {
		case "status":
			changeOrderStatus(w, r, orderID)
		case "payment":
			changeOrderPayment(w, r, orderID)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showOrder(w, r, orderID)
	case http.MethodDelete:
		deleteOrder(w, r, orderID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := database.WithContext(ctx).Preload("Items").Order("created_at desc")
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		applog.Error(ctx, "failed to list orders", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load orders")
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, projectOrder(order))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showOrder(w http.ResponseWriter, r *http.Request, id uint) {
	order, ok := loadOrder(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectOrder(order))
}

// createOrder stores an order with its items. The total and invoice number
// are computed server side; each item amount is denormalized at the price in
// effect when the order was placed.
func createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload, err := decodeOrderPayload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order := models.Order{
		CustomerName:  payload.CustomerName,
		PhoneNumber:   strings.TrimSpace(payload.PhoneNumber),
		Address:       strings.TrimSpace(payload.Address),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	for _, item := range payload.Items {
		order.Items = append(order.Items, models.OrderItem{
			RecipeName:   strings.TrimSpace(item.RecipeName),
			QuantityType: strings.TrimSpace(item.QuantityType),
			Quantity:     item.Quantity,
			Amount:       item.Amount,
		})
		order.TotalAmount += item.Amount * float64(item.Quantity)
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
			return err
		}
		order.InvoiceNumber = fmt.Sprintf("INV-%s-%04d", time.Now().Format("200601"), count+1)
		return tx.WithContext(ctx).Create(&order).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to create order", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create order")
		return
	}

	writeJSON(w, http.StatusCreated, projectOrder(order))
}

// deleteOrder removes an order and its items together.
func deleteOrder(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Delete(&models.Order{}, id).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to delete order", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func changeOrderStatus(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var payload statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !models.ValidOrderStatus(payload.Status) {
		writeJSONError(w, http.StatusBadRequest, "status must be one of pending, confirmed, delivered, cancelled")
		return
	}

	order, ok := loadOrder(w, r, id)
	if !ok {
		return
	}
	if err := database.WithContext(ctx).Model(&order).Update("status", payload.Status).Error; err != nil {
		applog.Error(ctx, "failed to update order status", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update order")
		return
	}
	order.Status = payload.Status
	writeJSON(w, http.StatusOK, projectOrder(order))
}

func changeOrderPayment(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var payload statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !models.ValidPaymentStatus(payload.Status) {
		writeJSONError(w, http.StatusBadRequest, "payment status must be paid or unpaid")
		return
	}

	order, ok := loadOrder(w, r, id)
	if !ok {
		return
	}
	if err := database.WithContext(ctx).Model(&order).Update("payment_status", payload.Status).Error; err != nil {
		applog.Error(ctx, "failed to update payment status", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to update order")
		return
	}
	order.PaymentStatus = payload.Status
	writeJSON(w, http.StatusOK, projectOrder(order))
}

func loadOrder(w http.ResponseWriter, r *http.Request, id uint) (models.Order, bool) {
	ctx := r.Context()
	var order models.Order
	if err := database.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return models.Order{}, false
		}
		applog.Error(ctx, "failed to load order", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load order")
		return models.Order{}, false
	}
	return order, true
}

func decodeOrderPayload(r *http.Request) (orderRequest, error) {
	var payload orderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return orderRequest{}, errors.New("invalid request payload")
	}
	payload.CustomerName = strings.TrimSpace(payload.CustomerName)
	if payload.CustomerName == "" {
		return orderRequest{}, errors.New("customer name is required")
	}
	if len(payload.Items) == 0 {
		return orderRequest{}, errors.New("at least one item is required")
	}
	for _, item := range payload.Items {
		if strings.TrimSpace(item.RecipeName) == "" {
			return orderRequest{}, errors.New("recipe name is required on every item")
		}
		if item.Quantity <= 0 {
			return orderRequest{}, errors.New("item quantity must be greater than zero")
		}
		if item.Amount < 0 {
			return orderRequest{}, errors.New("item amount must not be negative")
		}
	}
	return payload, nil
}

func projectOrder(order models.Order) orderResponse {
	response := orderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		PhoneNumber:   order.PhoneNumber,
		Address:       order.Address,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		InvoiceNumber: order.InvoiceNumber,
		Items:         make([]orderItemResponse, 0, len(order.Items)),
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, orderItemResponse{
			ID:           item.ID,
			RecipeName:   item.RecipeName,
			QuantityType: item.QuantityType,
			Quantity:     item.Quantity,
			Amount:       item.Amount,
		})
	}
	return response
}
