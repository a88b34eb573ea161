package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductStockEntry is one day's movement of a finished product in the stock
// register. ClosingStock is derived: opening + production - sales.
type ProductStockEntry struct {
	gorm.Model
	EntryDate    time.Time `gorm:"not null;index" json:"entry_date"`
	ProductName  string    `gorm:"not null" json:"product_name"`
	OpeningStock float64   `gorm:"not null;default:0" json:"opening_stock"`
	Production   float64   `gorm:"not null;default:0" json:"production"`
	Sales        float64   `gorm:"not null;default:0" json:"sales"`
	ClosingStock float64   `gorm:"not null;default:0" json:"closing_stock"`
}

// RawMaterialStockEntry is one day's movement of a raw ingredient.
// Closing is derived: opening + purchased - used.
type RawMaterialStockEntry struct {
	gorm.Model
	EntryDate      time.Time `gorm:"not null;index" json:"entry_date"`
	IngredientName string    `gorm:"not null" json:"ingredient_name"`
	Opening        float64   `gorm:"not null;default:0" json:"opening"`
	Purchased      float64   `gorm:"not null;default:0" json:"purchased"`
	Used           float64   `gorm:"not null;default:0" json:"used"`
	Closing        float64   `gorm:"not null;default:0" json:"closing"`
}

// ProductClosingStock computes a finished-product closing balance.
func ProductClosingStock(opening, production, sales float64) float64 {
	return opening + production - sales
}

// RawMaterialClosing computes a raw-material closing balance.
func RawMaterialClosing(opening, purchased, used float64) float64 {
	return opening + purchased - used
}
