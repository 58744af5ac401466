package models

import "time"

type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint `gorm:"column:user_id;index" json:"userId"`
	ProductID uint `gorm:"column:product_id;index" json:"productId" binding:"required"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn" binding:"required"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut" binding:"required"`
	Guests   int       `gorm:"column:guests;default:1" json:"guests" binding:"required,gt=0"`

	TotalPrice      float64     `gorm:"column:total_price" json:"totalPrice"`
	Status          OrderStatus `gorm:"column:status;size:20;default:pending" json:"status"`
	Notes           string      `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ReferenceCode   string      `gorm:"column:reference_code;size:64" json:"referenceCode,omitempty"`
	PaymentIntentID string      `gorm:"column:payment_intent_id;size:64" json:"paymentIntentId,omitempty"`

	User    User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Product Property `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}
