package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shuno-backend/metrics"
	"shuno-backend/models"
)

var (
	ErrBookingConflict     = errors.New("property already booked for this date range")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTooManyGuests       = errors.New("guest count exceeds property capacity")
	ErrPropertyUnavailable = errors.New("property is not available")
)

// StayQuoter prices a stay for a property.
type StayQuoter interface {
	CalculateRange(productID uint, checkIn, checkOut time.Time) (*PriceQuote, error)
}

type OrderService struct {
	DB       *gorm.DB
	Prices   StayQuoter
	Logger   zerolog.Logger
	Reporter *metrics.ErrorReporter
}

func NewOrderService(db *gorm.DB, prices StayQuoter, logger zerolog.Logger, reporter *metrics.ErrorReporter) *OrderService {
	return &OrderService{DB: db, Prices: prices, Logger: logger, Reporter: reporter}
}

// Create validates the stay, prices it and persists the order as pending.
// When period resolution fails the total silently falls back to
// basePrice × nights; the fallback is logged and counted so it stays
// observable.
func (s *OrderService) Create(order *models.Order) error {
	if !order.CheckOut.After(order.CheckIn) {
		return ErrInvalidDateRange
	}

	var product models.Property
	if err := s.DB.First(&product, order.ProductID).Error; err != nil {
		return err
	}
	if !product.IsActive {
		return ErrPropertyUnavailable
	}
	if order.Guests > product.MaxGuests {
		return ErrTooManyGuests
	}

	if err := s.checkOverlap(order); err != nil {
		return err
	}

	quote, err := s.Prices.CalculateRange(order.ProductID, order.CheckIn, order.CheckOut)
	if err != nil {
		nights := Nights(order.CheckIn, order.CheckOut)
		order.TotalPrice = Round2(product.Price * float64(nights))
		s.Logger.Warn().Err(err).
			Uint("product_id", order.ProductID).
			Float64("total", order.TotalPrice).
			Msg("price resolution failed, falling back to base price")
		metrics.IncPriceFallback()
		if s.Reporter != nil {
			s.Reporter.Report("orders.pricing_fallback", 500, err.Error())
		}
	} else {
		order.TotalPrice = quote.TotalPrice
	}

	order.Status = models.StatusPending
	order.ReferenceCode = newReferenceCode()

	return s.DB.Create(order).Error
}

// checkOverlap rejects a stay that intersects a pending or confirmed order
// for the same property. Ranges touch without conflict when one check-out
// equals the other check-in.
func (s *OrderService) checkOverlap(order *models.Order) error {
	var count int64
	err := s.DB.Model(&models.Order{}).
		Where("product_id = ?", order.ProductID).
		Where("status IN ?", []models.OrderStatus{models.StatusPending, models.StatusConfirmed}).
		Where("check_in < ? AND check_out > ?", order.CheckOut, order.CheckIn).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBookingConflict
	}
	return nil
}

func (s *OrderService) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("User").
		Preload("Product").
		Order("orders.id DESC").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("User").Preload("Product").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus applies a guarded status change. Illegal transitions
// (including any change off a terminal status) fail with
// ErrInvalidTransition.
func (s *OrderService) UpdateStatus(id uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidTransition
	}

	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		return nil, err
	}

	if order.Status == next {
		return &order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if err := s.DB.Model(&order).Update("status", next).Error; err != nil {
		return nil, err
	}
	order.Status = next
	return &order, nil
}

// UpdateNotes updates the free-form notes on an order.
func (s *OrderService) UpdateNotes(id uint, notes string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&order).Update("notes", notes).Error; err != nil {
		return nil, err
	}
	order.Notes = notes
	return &order, nil
}

// Delete removes the order row. This is a hard delete, matching the admin
// DELETE endpoint.
func (s *OrderService) Delete(id uint) error {
	result := s.DB.Delete(&models.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPaymentIntent records the payment intent id issued for an order.
func (s *OrderService) SetPaymentIntent(id uint, intentID string) error {
	return s.DB.Model(&models.Order{}).Where("id = ?", id).
		Update("payment_intent_id", intentID).Error
}

func newReferenceCode() string {
	return "SHU-" + strings.ToUpper(uuid.NewString()[:8])
}
