package models

import (
	"gorm.io/gorm"
)

// RecipePricing is one sellable pack size of a recipe, e.g. "Sambar Powder"
// in the "250g" pack. A recipe has at most one row per quantity type.
type RecipePricing struct {
	gorm.Model
	RecipeName   string  `gorm:"not null;uniqueIndex:idx_recipe_quantity" json:"recipe_name"`
	QuantityType string  `gorm:"not null;uniqueIndex:idx_recipe_quantity" json:"quantity_type"`
	Price        float64 `gorm:"not null;default:0" json:"price"`
	IsEnabled    bool    `gorm:"not null;default:true" json:"is_enabled"`
}
