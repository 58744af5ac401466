package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shuno-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	checkIn := date(2026, 7, 10)

	assert.Equal(t, 1, Nights(checkIn, date(2026, 7, 11)))
	assert.Equal(t, 7, Nights(checkIn, date(2026, 7, 17)))

	// partial day rounds up
	assert.Equal(t, 2, Nights(checkIn, date(2026, 7, 11).Add(6*time.Hour)))

	// degenerate ranges still bill one night
	assert.Equal(t, 1, Nights(checkIn, checkIn))
}

func TestResolveTotalBasePriceOnly(t *testing.T) {
	total := ResolveTotal(120, nil, date(2026, 7, 10), date(2026, 7, 14))
	assert.Equal(t, 480.0, total)
}

func TestResolveTotalWithPeriod(t *testing.T) {
	periods := []models.PricePeriod{
		{StartDate: date(2026, 7, 12), EndDate: date(2026, 7, 20), Price: 200},
	}

	// nights 10,11 at base 100; nights 12,13 at 200
	total := ResolveTotal(100, periods, date(2026, 7, 10), date(2026, 7, 14))
	assert.Equal(t, 600.0, total)
}

func TestResolveTotalEndDateExclusive(t *testing.T) {
	periods := []models.PricePeriod{
		{StartDate: date(2026, 7, 10), EndDate: date(2026, 7, 11), Price: 500},
	}

	// the night of the 11th is outside [10, 11)
	total := ResolveTotal(100, periods, date(2026, 7, 11), date(2026, 7, 12))
	assert.Equal(t, 100.0, total)
}

func TestResolveTotalOverlapFirstMatch(t *testing.T) {
	periods := []models.PricePeriod{
		{ID: 1, StartDate: date(2026, 7, 1), EndDate: date(2026, 8, 1), Price: 150},
		{ID: 2, StartDate: date(2026, 7, 1), EndDate: date(2026, 8, 1), Price: 999},
	}

	// both cover every night; the first one in order wins
	total := ResolveTotal(100, periods, date(2026, 7, 10), date(2026, 7, 12))
	assert.Equal(t, 300.0, total)
}

func TestResolveTotalRounding(t *testing.T) {
	periods := []models.PricePeriod{
		{StartDate: date(2026, 7, 10), EndDate: date(2026, 7, 20), Price: 99.99},
	}

	total := ResolveTotal(100, periods, date(2026, 7, 10), date(2026, 7, 13))
	assert.Equal(t, 299.97, total)
}
