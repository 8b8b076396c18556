package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mentorsetu/mentorsetu-api/config"
	"github.com/mentorsetu/mentorsetu-api/pkg/httpclient"
	"github.com/mentorsetu/mentorsetu-api/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFor(t *testing.T) {
	assert.Equal(t, "Session booked successfully! Check your email for confirmation.", MessageFor(BookingConfirmed))
	assert.Equal(t, "Failed to book session. Please try again.", MessageFor(BookingFailed))
	assert.Equal(t, "Session cancelled successfully", MessageFor(BookingCancelled))
	assert.Equal(t, "Failed to cancel session. Please try again.", MessageFor(CancelFailed))
	assert.Empty(t, MessageFor("unknown"))
}

func TestWebhookNotifier_PostsToKindURL(t *testing.T) {
	received := make(chan trigger.Payload, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p trigger.Payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		received <- p
	}))
	defer server.Close()

	n := NewWebhookNotifier(config.EventTriggerFunctionsConfig{
		BookingCancelledTriggerURL: server.URL,
	}, httpclient.NewStandardClient())

	n.Notify(context.Background(), Event{Kind: BookingCancelled, BookingID: "b-9"})

	select {
	case p := <-received:
		assert.Equal(t, "booking_cancelled", p.Event)
		assert.Equal(t, "b-9", p.RecordID)
		assert.Equal(t, MessageBookingCancelled, p.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook not called")
	}
}

func TestWebhookNotifier_NoURLOnlyLogs(t *testing.T) {
	n := NewWebhookNotifier(config.EventTriggerFunctionsConfig{}, httpclient.NewStandardClient())
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), Event{Kind: BookingConfirmed, BookingID: "b-1"})
	})
}

func TestNewWebhookNotifier_SharesBreakerPerURL(t *testing.T) {
	n := NewWebhookNotifier(config.EventTriggerFunctionsConfig{
		BookingConfirmedTriggerURL: "http://hooks.local/confirmed",
		BookingFailedTriggerURL:    "http://hooks.local/failed",
	}, httpclient.NewStandardClient())

	assert.Len(t, n.breakers, 2)
	assert.Same(t, n.breakers[n.urls[BookingFailed]], n.breakers[n.urls[CancelFailed]])
	assert.Nil(t, n.breakers[n.urls[BookingCancelled]])
}
