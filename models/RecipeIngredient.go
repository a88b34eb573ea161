package models

import (
	"gorm.io/gorm"
)

// RecipeIngredient is one line of a recipe. IngredientName references a
// MasterIngredient by name; a line without a matching master record still
// exists, it just cannot be costed.
type RecipeIngredient struct {
	gorm.Model
	RecipeID       uint    `gorm:"not null;index" json:"recipe_id"`
	IngredientName string  `gorm:"not null" json:"ingredient_name"`
	Quantity       float64 `gorm:"not null" json:"quantity"`
	Unit           string  `gorm:"not null;default:g" json:"unit"`
}
