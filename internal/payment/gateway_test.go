package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGateway_ChargeApproves(t *testing.T) {
	g := NewSimulatedGateway(5 * time.Millisecond)

	start := time.Now()
	res, err := g.Charge(context.Background(), ChargeRequest{SubmissionID: "s-1", Amount: 2500})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	assert.Equal(t, 2500, res.Amount)
	assert.NotEmpty(t, res.TransactionID)
	assert.Equal(t, "simulated", g.Name())
}

func TestSimulatedGateway_HonoursCancellation(t *testing.T) {
	g := NewSimulatedGateway(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := g.Charge(ctx, ChargeRequest{Amount: 2500})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedGateway_RejectsNonPositiveAmount(t *testing.T) {
	_, err := NewSimulatedGateway(0).Charge(context.Background(), ChargeRequest{Amount: 0})
	assert.Error(t, err)
}

func TestSleep_ZeroDelay(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}
