package services

import (
	"context"
	"time"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/notify"
	"github.com/mentorsetu/mentorsetu-api/internal/payment"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	"github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/money"
	"go.uber.org/zap"
)

const messageAlreadyCancelled = "Session already cancelled"

type DashboardService struct {
	store       repository.BookingStore
	notifier    notify.Notifier
	cancelDelay time.Duration
	now         func() time.Time
}

func NewDashboardService(store repository.BookingStore, notifier notify.Notifier, cancelDelay time.Duration) *DashboardService {
	return &DashboardService{
		store:       store,
		notifier:    notifier,
		cancelDelay: cancelDelay,
		now:         time.Now,
	}
}

// WithClock replaces the time source
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func isUpcoming(b models.Booking, now time.Time) bool {
	return b.Status == models.BookingStatusConfirmed && !b.Date.Time().Before(now)
}

func isPast(b models.Booking, now time.Time) bool {
	return b.Status == models.BookingStatusCompleted || b.Date.Time().Before(now)
}

func isCancelled(b models.Booking) bool {
	return b.Status == models.BookingStatusCancelled
}

// Partition splits bookings into dashboard buckets, keeping collection order.
// A booking's date counts as 00:00 UTC of that day.
func Partition(bookings []models.Booking, now time.Time, mode models.DashboardMode) models.Dashboard {
	if mode != models.DashboardModeExclusive {
		mode = models.DashboardModeOverlapping
	}

	d := models.Dashboard{
		Mode:      mode,
		Upcoming:  []models.BookingView{},
		Past:      []models.BookingView{},
		Cancelled: []models.BookingView{},
	}

	for _, b := range bookings {
		view := bookingView(b)
		if mode == models.DashboardModeExclusive {
			switch {
			case isCancelled(b):
				d.Cancelled = append(d.Cancelled, view)
			case isPast(b, now):
				d.Past = append(d.Past, view)
			case isUpcoming(b, now):
				d.Upcoming = append(d.Upcoming, view)
			}
			continue
		}

		if isUpcoming(b, now) {
			d.Upcoming = append(d.Upcoming, view)
		}
		if isPast(b, now) {
			d.Past = append(d.Past, view)
		}
		if isCancelled(b) {
			d.Cancelled = append(d.Cancelled, view)
		}
	}

	spent := 0
	for _, b := range bookings {
		if !isCancelled(b) {
			spent += b.Amount
		}
	}
	d.Summary = models.DashboardSummary{
		Total:             len(bookings),
		Upcoming:          len(d.Upcoming),
		Past:              len(d.Past),
		Cancelled:         len(d.Cancelled),
		TotalSpent:        spent,
		TotalSpentDisplay: money.FormatINR(spent),
	}
	return d
}

// Get recomputes the dashboard over the whole collection
func (s *DashboardService) Get(ctx context.Context, mode models.DashboardMode) (*models.Dashboard, error) {
	bookings, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	d := Partition(bookings, s.now(), mode)
	return &d, nil
}

func (s *DashboardService) cancelFailed(ctx context.Context, bookingID, outcome string, err error) {
	metrics.BookingCancellations.WithLabelValues(outcome).Inc()
	logger.Error("Failed to cancel booking",
		zap.String("booking_id", bookingID),
		zap.String("outcome", outcome),
		zap.Error(err))
	s.notifier.Notify(context.WithoutCancel(ctx), notify.Event{
		Kind:      notify.CancelFailed,
		BookingID: bookingID,
		Message:   notify.MessageCancelFailed,
		At:        s.now().UTC(),
	})
}

func alreadyCancelled(b models.Booking) *models.CancelBookingResponse {
	metrics.BookingCancellations.WithLabelValues("unchanged").Inc()
	return &models.CancelBookingResponse{
		Booking: bookingView(b),
		Message: messageAlreadyCancelled,
		Changed: false,
	}
}

// CancelBooking waits out the cancel delay then marks the booking cancelled.
// Cancelling an already cancelled booking returns it unchanged, including when
// another cancel of the same booking landed during the delay.
func (s *DashboardService) CancelBooking(ctx context.Context, bookingID string) (*models.CancelBookingResponse, error) {
	bookings, err := s.store.List(ctx)
	if err != nil {
		s.cancelFailed(ctx, bookingID, "error", err)
		return nil, err
	}

	var current *models.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			current = &bookings[i]
			break
		}
	}
	if current == nil {
		metrics.BookingCancellations.WithLabelValues("not_found").Inc()
		return nil, errors.NotFoundError("booking " + bookingID)
	}

	if current.Status == models.BookingStatusCancelled {
		return alreadyCancelled(*current), nil
	}
	if !current.Status.CanTransitionTo(models.BookingStatusCancelled) {
		metrics.BookingCancellations.WithLabelValues("conflict").Inc()
		return nil, errors.ConflictError(string(current.Status) + " sessions cannot be cancelled")
	}

	if err := payment.Sleep(ctx, s.cancelDelay); err != nil {
		s.cancelFailed(ctx, bookingID, "aborted", err)
		return nil, err
	}

	status := models.BookingStatusCancelled
	updated, changed, err := s.store.Update(ctx, bookingID, models.BookingPatch{Status: &status})
	if err != nil {
		s.cancelFailed(ctx, bookingID, "error", err)
		return nil, err
	}
	if !changed {
		return alreadyCancelled(updated), nil
	}

	metrics.BookingCancellations.WithLabelValues("success").Inc()
	logger.Info("Booking cancelled", zap.String("booking_id", bookingID))
	s.notifier.Notify(ctx, notify.Event{
		Kind:      notify.BookingCancelled,
		BookingID: bookingID,
		Message:   notify.MessageBookingCancelled,
		At:        s.now().UTC(),
	})

	return &models.CancelBookingResponse{
		Booking: bookingView(updated),
		Message: notify.MessageBookingCancelled,
		Changed: true,
	}, nil
}
