package models

import (
	"gorm.io/gorm"
)

// MasterIngredient is one row of the master price list. Name is the lookup key
// used by recipe lines, so at most one active record may exist per name.
type MasterIngredient struct {
	gorm.Model
	Name       string  `gorm:"uniqueIndex;not null" json:"name"`
	PricePerKg float64 `gorm:"not null;default:0" json:"price_per_kg"`
	Brand      string  `json:"brand,omitempty"`
}
