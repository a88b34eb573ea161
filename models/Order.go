package models

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type Order struct {
	gorm.Model
	CustomerName  string      `gorm:"not null" json:"customer_name"`
	PhoneNumber   string      `json:"phone_number"`
	Address       string      `gorm:"type:text" json:"address"`
	TotalAmount   float64     `gorm:"not null;default:0" json:"total_amount"`
	Status        string      `gorm:"not null;default:pending" json:"status"`
	PaymentStatus string      `gorm:"not null;default:unpaid" json:"payment_status"`
	InvoiceNumber string      `gorm:"uniqueIndex" json:"invoice_number"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem records one recipe/pack-size line of an order. RecipeName and
// QuantityType are stored denormalized so an order survives recipe edits.
type OrderItem struct {
	gorm.Model
	OrderID      uint    `gorm:"not null;index" json:"order_id"`
	RecipeName   string  `gorm:"not null" json:"recipe_name"`
	QuantityType string  `gorm:"not null" json:"quantity_type"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	Amount       float64 `gorm:"not null" json:"amount"`
}

// ValidOrderStatus reports whether value is one of the recognized order states.
func ValidOrderStatus(value string) bool {
	switch value {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether value is a recognized payment state.
func ValidPaymentStatus(value string) bool {
	return value == PaymentStatusUnpaid || value == PaymentStatusPaid
}
