package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shuno-backend/metrics"
	"shuno-backend/models"
)

// PendingConfirmer promotes pending orders to confirmed.
type PendingConfirmer interface {
	ConfirmPending(ctx context.Context) (int64, error)
}

// AutoConfirmToggle reports whether the auto-confirm policy is on.
type AutoConfirmToggle interface {
	AutoConfirmEnabled() bool
}

type AutoConfirmService struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

func NewAutoConfirmService(db *gorm.DB, logger zerolog.Logger) *AutoConfirmService {
	return &AutoConfirmService{DB: db, Logger: logger}
}

// ConfirmPending transitions every pending order to confirmed in a single
// batch update and returns the number of orders confirmed.
func (s *AutoConfirmService) ConfirmPending(ctx context.Context) (int64, error) {
	result := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.StatusPending).
		Update("status", models.StatusConfirmed)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.Logger.Info().Int64("confirmed", result.RowsAffected).Msg("auto-confirm batch applied")
	}
	metrics.AddAutoConfirmed(result.RowsAffected)
	return result.RowsAffected, nil
}

// RunAutoConfirmWorker runs the confirm batch on every tick while the
// toggle is enabled. It returns when ctx is cancelled.
func RunAutoConfirmWorker(ctx context.Context, confirmer PendingConfirmer, toggle AutoConfirmToggle, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("auto-confirm worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("auto-confirm worker stopped")
			return
		case <-ticker.C:
			if !toggle.AutoConfirmEnabled() {
				continue
			}
			if _, err := confirmer.ConfirmPending(ctx); err != nil {
				logger.Error().Err(err).Msg("auto-confirm batch failed")
			}
		}
	}
}
