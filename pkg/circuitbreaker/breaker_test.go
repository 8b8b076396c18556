package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("endpoint down")

func TestRun_NilBreakerCallsThrough(t *testing.T) {
	calls := 0
	err := Run(nil, func() error {
		calls++
		return errDown
	})
	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, 1, calls)
}

func TestRun_TripsAfterFailureRatio(t *testing.T) {
	cfg := DefaultConfig("test_trip")
	cfg.Timeout = time.Hour
	cb := New(cfg)

	calls := 0
	failing := func() error {
		calls++
		return errDown
	}

	for i := 0; i < 3; i++ {
		err := Run(cb, failing)
		require.ErrorIs(t, err, errDown)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	err := Run(cb, failing)
	assert.True(t, IsOpen(err))
	assert.Contains(t, err.Error(), "test_trip")
	assert.Equal(t, 3, calls)
}

func TestRun_StaysClosedBelowMinRequests(t *testing.T) {
	cb := New(DefaultConfig("test_min"))

	_ = Run(cb, func() error { return errDown })
	_ = Run(cb, func() error { return errDown })

	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.NoError(t, Run(cb, func() error { return nil }))
}

func TestFormatError_PassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, errDown, FormatError("x", errDown))
	assert.Nil(t, FormatError("x", nil))
	assert.False(t, IsOpen(errDown))
}
