package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"go.uber.org/zap"
)

// ChargeRequest describes one session payment
type ChargeRequest struct {
	SubmissionID string
	MentorID     string
	Email        string
	Amount       int
}

// ChargeResult is returned for an accepted charge
type ChargeResult struct {
	TransactionID string
	Amount        int
	ChargedAt     time.Time
}

// Gateway charges a student for a session
type Gateway interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// SimulatedGateway waits for a fixed processing delay and always accepts
type SimulatedGateway struct {
	delay time.Duration
	now   func() time.Time
}

// NewSimulatedGateway creates a gateway that takes delay to approve a charge
func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, now: time.Now}
}

// Name implements Gateway
func (g *SimulatedGateway) Name() string {
	return "simulated"
}

// Charge waits out the processing delay; cancellation aborts it
func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	start := time.Now()

	if req.Amount <= 0 {
		metrics.PaymentDuration.WithLabelValues(g.Name(), "error").Observe(metrics.MeasureDuration(start))
		return ChargeResult{}, fmt.Errorf("charge amount must be positive, got %d", req.Amount)
	}

	if err := Sleep(ctx, g.delay); err != nil {
		metrics.PaymentDuration.WithLabelValues(g.Name(), "cancelled").Observe(metrics.MeasureDuration(start))
		return ChargeResult{}, err
	}

	result := ChargeResult{
		TransactionID: "sim_" + uuid.NewString(),
		Amount:        req.Amount,
		ChargedAt:     g.now().UTC(),
	}
	metrics.PaymentDuration.WithLabelValues(g.Name(), "success").Observe(metrics.MeasureDuration(start))
	logger.Debug("Simulated charge approved",
		zap.String("submission_id", req.SubmissionID),
		zap.String("transaction_id", result.TransactionID),
		zap.Int("amount", req.Amount))

	return result, nil
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
