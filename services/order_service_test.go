package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shuno-backend/metrics"
	"shuno-backend/models"
)

func newOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PricePeriod{},
		&models.Order{},
	))
	return db
}

func seedProperty(t *testing.T, db *gorm.DB, price float64, maxGuests int, active bool) *models.Property {
	t.Helper()
	product := models.Property{
		Name:      "Cabin",
		Location:  "Lofoten",
		Price:     price,
		MaxGuests: maxGuests,
		IsActive:  active,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func newOrderService(db *gorm.DB, quoter StayQuoter, reporter *metrics.ErrorReporter) *OrderService {
	if quoter == nil {
		quoter = NewPriceService(db)
	}
	return NewOrderService(db, quoter, zerolog.Nop(), reporter)
}

type failingQuoter struct{}

func (failingQuoter) CalculateRange(productID uint, checkIn, checkOut time.Time) (*PriceQuote, error) {
	return nil, errors.New("resolver down")
}

func TestOrderCreateFallbackEqualsBaseTimesNights(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 120.55, 4, true)
	reporter := metrics.NewErrorReporter()
	svc := newOrderService(db, failingQuoter{}, reporter)

	order := models.Order{
		UserID:    1,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 10),
		CheckOut:  date(2026, time.July, 13),
		Guests:    2,
	}
	require.NoError(t, svc.Create(&order))

	// 3 nights at the base price, exactly
	assert.Equal(t, Round2(120.55*3), order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.ReferenceCode, "SHU-"))

	snap := reporter.Metrics()
	assert.Equal(t, int64(1), snap.ByContext["orders.pricing_fallback"])
}

func TestOrderCreateUsesResolvedQuote(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 100, 4, true)
	require.NoError(t, db.Create(&models.PricePeriod{
		ProductID: product.ID,
		StartDate: date(2026, time.July, 1),
		EndDate:   date(2026, time.August, 1),
		Price:     150,
	}).Error)

	svc := newOrderService(db, nil, nil)
	order := models.Order{
		UserID:    1,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 10),
		CheckOut:  date(2026, time.July, 12),
		Guests:    2,
	}
	require.NoError(t, svc.Create(&order))
	assert.Equal(t, 300.0, order.TotalPrice)
}

func TestOrderCreateRejectsOverlap(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 100, 4, true)
	svc := newOrderService(db, nil, nil)

	first := models.Order{
		UserID:    1,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 10),
		CheckOut:  date(2026, time.July, 15),
		Guests:    2,
	}
	require.NoError(t, svc.Create(&first))

	second := models.Order{
		UserID:    2,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 12),
		CheckOut:  date(2026, time.July, 20),
		Guests:    2,
	}
	err := svc.Create(&second)
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestOrderCreateAllowsBackToBackStays(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 100, 4, true)
	svc := newOrderService(db, nil, nil)

	first := models.Order{
		UserID:    1,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 10),
		CheckOut:  date(2026, time.July, 15),
		Guests:    2,
	}
	require.NoError(t, svc.Create(&first))

	// check-in on the previous guest's check-out day is fine
	second := models.Order{
		UserID:    2,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 15),
		CheckOut:  date(2026, time.July, 18),
		Guests:    2,
	}
	assert.NoError(t, svc.Create(&second))
}

func TestOrderCreateIgnoresCancelledOverlap(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 100, 4, true)
	svc := newOrderService(db, nil, nil)

	first := models.Order{
		UserID:    1,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 10),
		CheckOut:  date(2026, time.July, 15),
		Guests:    2,
	}
	require.NoError(t, svc.Create(&first))
	_, err := svc.UpdateStatus(first.ID, models.StatusCancelled)
	require.NoError(t, err)

	second := models.Order{
		UserID:    2,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 12),
		CheckOut:  date(2026, time.July, 14),
		Guests:    2,
	}
	assert.NoError(t, svc.Create(&second))
}

func TestOrderCreateValidation(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 100, 2, true)
	inactive := seedProperty(t, db, 100, 2, false)
	svc := newOrderService(db, nil, nil)

	base := models.Order{
		UserID:   1,
		CheckIn:  date(2026, time.July, 10),
		CheckOut: date(2026, time.July, 12),
		Guests:   2,
	}

	tooMany := base
	tooMany.ProductID = product.ID
	tooMany.Guests = 5
	assert.ErrorIs(t, svc.Create(&tooMany), ErrTooManyGuests)

	unavailable := base
	unavailable.ProductID = inactive.ID
	assert.ErrorIs(t, svc.Create(&unavailable), ErrPropertyUnavailable)

	unknown := base
	unknown.ProductID = 9999
	assert.ErrorIs(t, svc.Create(&unknown), gorm.ErrRecordNotFound)

	sameDay := base
	sameDay.ProductID = product.ID
	sameDay.CheckOut = sameDay.CheckIn
	assert.ErrorIs(t, svc.Create(&sameDay), ErrInvalidDateRange)
}

func TestOrderUpdateStatusGuards(t *testing.T) {
	db := newOrderTestDB(t)
	product := seedProperty(t, db, 100, 4, true)
	svc := newOrderService(db, nil, nil)

	order := models.Order{
		UserID:    1,
		ProductID: product.ID,
		CheckIn:   date(2026, time.July, 10),
		CheckOut:  date(2026, time.July, 12),
		Guests:    2,
	}
	require.NoError(t, svc.Create(&order))

	updated, err := svc.UpdateStatus(order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	// confirmed cannot go back to pending
	_, err = svc.UpdateStatus(order.ID, models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err = svc.UpdateStatus(order.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// completed is terminal
	_, err = svc.UpdateStatus(order.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
