package notify

import (
	"context"
	"time"

	"github.com/mentorsetu/mentorsetu-api/config"
	"github.com/mentorsetu/mentorsetu-api/pkg/circuitbreaker"
	"github.com/mentorsetu/mentorsetu-api/pkg/httpclient"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/trigger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Kind names a user-facing outcome
type Kind string

const (
	BookingConfirmed Kind = "booking_confirmed"
	BookingFailed    Kind = "booking_failed"
	BookingCancelled Kind = "booking_cancelled"
	CancelFailed     Kind = "cancel_failed"
)

// User-facing messages per outcome
const (
	MessageBookingConfirmed = "Session booked successfully! Check your email for confirmation."
	MessageBookingFailed    = "Failed to book session. Please try again."
	MessageBookingCancelled = "Session cancelled successfully"
	MessageCancelFailed     = "Failed to cancel session. Please try again."
	MessageMissingFields    = "Please fill in all required fields"
)

// MessageFor returns the toast text for kind
func MessageFor(kind Kind) string {
	switch kind {
	case BookingConfirmed:
		return MessageBookingConfirmed
	case BookingFailed:
		return MessageBookingFailed
	case BookingCancelled:
		return MessageBookingCancelled
	case CancelFailed:
		return MessageCancelFailed
	default:
		return ""
	}
}

// Event is a notification raised by a flow outcome
type Event struct {
	Kind      Kind
	BookingID string
	Message   string
	At        time.Time
}

// Notifier delivers events. Fire-and-forget: callers never wait for delivery.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// WebhookNotifier logs every event and posts it to the trigger URL configured for its kind
type WebhookNotifier struct {
	urls       map[Kind]string
	breakers   map[string]*gobreaker.CircuitBreaker
	httpClient httpclient.Client
}

// NewWebhookNotifier maps trigger URLs onto event kinds
func NewWebhookNotifier(cfg config.EventTriggerFunctionsConfig, httpClient httpclient.Client) *WebhookNotifier {
	urls := map[Kind]string{
		BookingConfirmed: cfg.BookingConfirmedTriggerURL,
		BookingFailed:    cfg.BookingFailedTriggerURL,
		BookingCancelled: cfg.BookingCancelledTriggerURL,
		CancelFailed:     cfg.BookingFailedTriggerURL,
	}

	// one breaker per endpoint; kinds sharing a URL share its breaker
	breakers := make(map[string]*gobreaker.CircuitBreaker)
	for _, kind := range []Kind{BookingConfirmed, BookingFailed, BookingCancelled, CancelFailed} {
		url := urls[kind]
		if url == "" {
			continue
		}
		if _, ok := breakers[url]; !ok {
			breakers[url] = circuitbreaker.New(circuitbreaker.DefaultConfig("trigger_" + string(kind)))
		}
	}

	return &WebhookNotifier{
		urls:       urls,
		breakers:   breakers,
		httpClient: httpClient,
	}
}

// Notify implements Notifier
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) {
	if event.Message == "" {
		event.Message = MessageFor(event.Kind)
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	metrics.NotificationsSent.WithLabelValues(string(event.Kind)).Inc()

	fields := []zap.Field{
		zap.String("kind", string(event.Kind)),
		zap.String("booking_id", event.BookingID),
		zap.String("message", event.Message),
	}
	switch event.Kind {
	case BookingFailed, CancelFailed:
		logger.Warn("Notification raised", fields...)
	default:
		logger.Info("Notification raised", fields...)
	}

	url := n.urls[event.Kind]
	trigger.CallAsync(url, trigger.Payload{
		Event:     string(event.Kind),
		RecordID:  event.BookingID,
		Message:   event.Message,
		Timestamp: event.At,
	}, n.httpClient, n.breakers[url])
}
