package repository

import (
	"context"
	"time"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// InstrumentedStore wraps a BookingStore with metrics, traces and call logs
type InstrumentedStore struct {
	next    BookingStore
	backend string
}

// Instrument wraps next; backend labels metrics ("memory", "postgres", "redis")
func Instrument(next BookingStore, backend string) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend}
}

// List implements BookingStore
func (s *InstrumentedStore) List(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := s.observe(ctx, "list", func(ctx context.Context) error {
		var err error
		out, err = s.next.List(ctx)
		return err
	}, nil)
	return out, err
}

// Append implements BookingStore
func (s *InstrumentedStore) Append(ctx context.Context, b models.Booking) error {
	return s.observe(ctx, "append", func(ctx context.Context) error {
		return s.next.Append(ctx, b)
	}, []zap.Field{zap.String("booking_id", b.ID)})
}

// Update implements BookingStore
func (s *InstrumentedStore) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, bool, error) {
	var out models.Booking
	var changed bool
	err := s.observe(ctx, "update", func(ctx context.Context) error {
		var err error
		out, changed, err = s.next.Update(ctx, id, patch)
		return err
	}, []zap.Field{zap.String("booking_id", id)})
	return out, changed, err
}

// Ping forwards to the wrapped store when it supports it
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *InstrumentedStore) observe(ctx context.Context, operation string, fn func(context.Context) error, fields []zap.Field) error {
	ctx, span := tracing.StartSpan(ctx, "bookings."+operation,
		attribute.String("store.backend", s.backend))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := metrics.MeasureDuration(start)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		fields = append(fields, zap.Error(err))
	}

	metrics.StoreOperationDuration.WithLabelValues(s.backend, operation, status).Observe(duration)
	metrics.StoreOperationTotal.WithLabelValues(s.backend, operation, status).Inc()
	logger.LogAPICall(ctx, s.backend, operation, status, duration, fields...)

	return err
}
