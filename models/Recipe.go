package models

import (
	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model
	Name         string             `gorm:"uniqueIndex;not null" json:"name"`
	Preparation  string             `gorm:"type:text" json:"preparation"`
	SellingPrice float64            `gorm:"not null;default:0" json:"selling_price"`
	Overheads    float64            `gorm:"not null;default:0" json:"overheads"`
	Calories     *float64           `json:"calories,omitempty"`
	Protein      *float64           `json:"protein,omitempty"`
	Fat          *float64           `json:"fat,omitempty"`
	Carbs        *float64           `json:"carbs,omitempty"`
	ShelfLife    string             `json:"shelf_life,omitempty"`
	Storage      string             `json:"storage,omitempty"`
	IsHidden     bool               `gorm:"not null;default:false" json:"is_hidden"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}
