package models

import "time"

// RestaurantCategory enumerates the supported restaurant types
type RestaurantCategory string

const (
	CategoryFastFood   RestaurantCategory = "Fast Food"
	CategoryCafe       RestaurantCategory = "Cafe"
	CategoryFineDining RestaurantCategory = "Fine Dining"
)

// ValidRestaurantCategory reports whether c is one of the known categories
func ValidRestaurantCategory(c RestaurantCategory) bool {
	switch c {
	case CategoryFastFood, CategoryCafe, CategoryFineDining:
		return true
	}
	return false
}

// Location is derived server-side from the restaurant's address at creation
// time and is never accepted from the client.
type Location struct {
	Type             string  `json:"type"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zipcode          string  `json:"zipcode"`
	Country          string  `json:"country"`
}

// Image is the descriptor returned by the object store after an upload
type Image struct {
	ID           uint   `json:"-" gorm:"primaryKey"`
	RestaurantID uint   `json:"-" gorm:"index;not null"`
	Key          string `json:"key" gorm:"not null"`
	Bucket       string `json:"bucket"`
	URL          string `json:"url"`
	ETag         string `json:"etag,omitempty"`
}

type Restaurant struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	UserID      uint               `json:"user_id" gorm:"not null"`
	Name        string             `json:"name" gorm:"not null"`
	Description string             `json:"description"`
	Email       string             `json:"email"`
	PhoneNo     string             `json:"phone_no"`
	Address     string             `json:"address" gorm:"not null"`
	Category    RestaurantCategory `json:"category" gorm:"not null"`
	Location    Location           `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Images      []Image            `json:"images" gorm:"foreignKey:RestaurantID"`
	Meals       []Meal             `json:"meals,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
