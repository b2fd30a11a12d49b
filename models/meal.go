package models

import "time"

// MealCategory enumerates the supported meal types
type MealCategory string

const (
	MealSoups      MealCategory = "Soups"
	MealSalads     MealCategory = "Salads"
	MealSandwiches MealCategory = "Sandwiches"
	MealPasta      MealCategory = "Pasta"
)

// ValidMealCategory reports whether c is one of the known categories
func ValidMealCategory(c MealCategory) bool {
	switch c {
	case MealSoups, MealSalads, MealSandwiches, MealPasta:
		return true
	}
	return false
}

type Meal struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	RestaurantID uint         `json:"restaurant_id" gorm:"not null;index"`
	UserID       uint         `json:"user_id" gorm:"not null"`
	Name         string       `json:"name" gorm:"not null"`
	Description  string       `json:"description"`
	Price        float64      `json:"price" gorm:"not null"`
	Category     MealCategory `json:"category" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
