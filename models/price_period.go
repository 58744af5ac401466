package models

import "time"

// PricePeriod overrides a property's nightly price for a date range.
// [StartDate, EndDate) — the end date is exclusive, like a check-out day.
// Ranges may overlap; resolution picks the first match in id order.
type PricePeriod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductID uint      `gorm:"column:product_id;index" json:"productId" binding:"required"`
	StartDate time.Time `gorm:"column:start_date" json:"startDate" binding:"required"`
	EndDate   time.Time `gorm:"column:end_date" json:"endDate" binding:"required"`
	Price     float64   `gorm:"column:price" json:"price" binding:"required,gt=0"`
	Name      string    `gorm:"column:name;size:100" json:"name,omitempty"`

	Product Property `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}

// Covers reports whether the given night falls inside the period.
func (p PricePeriod) Covers(night time.Time) bool {
	return !night.Before(p.StartDate) && night.Before(p.EndDate)
}
