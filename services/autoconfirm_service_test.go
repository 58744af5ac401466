package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockConfirmer struct {
	mock.Mock
}

func (m *mockConfirmer) ConfirmPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type staticToggle struct {
	enabled atomic.Bool
}

func (t *staticToggle) AutoConfirmEnabled() bool {
	return t.enabled.Load()
}

func TestWorkerConfirmsWhenEnabled(t *testing.T) {
	confirmer := &mockConfirmer{}
	confirmer.On("ConfirmPending", mock.Anything).Return(int64(2), nil)

	toggle := &staticToggle{}
	toggle.enabled.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	RunAutoConfirmWorker(ctx, confirmer, toggle, 20*time.Millisecond, zerolog.Nop())

	confirmer.AssertCalled(t, "ConfirmPending", mock.Anything)
	assert.GreaterOrEqual(t, len(confirmer.Calls), 2)
}

func TestWorkerSkipsWhenDisabled(t *testing.T) {
	confirmer := &mockConfirmer{}
	toggle := &staticToggle{} // disabled

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	RunAutoConfirmWorker(ctx, confirmer, toggle, 20*time.Millisecond, zerolog.Nop())

	confirmer.AssertNotCalled(t, "ConfirmPending", mock.Anything)
}
