package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"shuno-backend/models"
)

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// PriceQuote is the computed cost of a stay. PricePerNight is the average
// (total / nights), not a real per-night breakdown.
type PriceQuote struct {
	TotalPrice    float64 `json:"totalPrice"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
}

type PriceService struct {
	DB *gorm.DB
}

func NewPriceService(db *gorm.DB) *PriceService {
	return &PriceService{DB: db}
}

// Nights counts billable nights between check-in and check-out (exclusive),
// rounding partial days up. Always ≥ 1 for a valid range.
func Nights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(math.Ceil(hours / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// ResolveTotal walks each night of the stay and sums the price of the first
// period covering it, falling back to basePrice for uncovered nights.
// Periods must already be ordered; overlap resolution is first match.
func ResolveTotal(basePrice float64, periods []models.PricePeriod, checkIn, checkOut time.Time) float64 {
	nights := Nights(checkIn, checkOut)
	total := 0.0
	night := checkIn
	for i := 0; i < nights; i++ {
		price := basePrice
		for _, p := range periods {
			if p.Covers(night) {
				price = p.Price
				break
			}
		}
		total += price
		night = night.AddDate(0, 0, 1)
	}
	return Round2(total)
}

// Round2 rounds to 2 decimals (currency units).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateRange computes the cost of a stay for a property, using its
// price periods and base price.
func (s *PriceService) CalculateRange(productID uint, checkIn, checkOut time.Time) (*PriceQuote, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	var product models.Property
	if err := s.DB.First(&product, productID).Error; err != nil {
		return nil, err
	}

	var periods []models.PricePeriod
	if err := s.DB.
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}

	nights := Nights(checkIn, checkOut)
	total := ResolveTotal(product.Price, periods, checkIn, checkOut)

	return &PriceQuote{
		TotalPrice:    total,
		Nights:        nights,
		PricePerNight: Round2(total / float64(nights)),
	}, nil
}
