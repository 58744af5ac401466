package models

import (
	"time"

	"gorm.io/datatypes"
)

// Property is a rentable unit listed on the site. The public API keeps
// calling these "products", so the table name follows the route names.
type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string  `gorm:"column:name;size:255" json:"name" binding:"required"`
	Location    string  `gorm:"column:location;size:255;index" json:"location" binding:"required"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price" json:"price" binding:"required,gt=0"`
	MaxGuests   int     `gorm:"column:max_guests" json:"maxGuests" binding:"required,gt=0"`
	Bedrooms    int     `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms   int     `gorm:"column:bathrooms" json:"bathrooms"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	IsActive bool `gorm:"column:is_active;default:true" json:"isActive"`
}

func (Property) TableName() string {
	return "products"
}
