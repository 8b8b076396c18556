package trigger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mentorsetu/mentorsetu-api/pkg/circuitbreaker"
	"github.com/mentorsetu/mentorsetu-api/pkg/httpclient"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Payload is the JSON body posted to a trigger URL
type Payload struct {
	Event     string    `json:"event"`
	RecordID  string    `json:"recordId"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Call posts payload to triggerURL and reports the outcome.
// An empty URL is a no-op.
func Call(triggerURL string, payload Payload, httpClient httpclient.Client) error {
	if triggerURL == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode trigger payload: %w", err)
	}

	resp, err := httpClient.Post(triggerURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to call trigger URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("trigger URL returned status %d", resp.StatusCode)
	}
	return nil
}

// CallAsync calls a trigger URL in the background through cb, which may be nil.
// Failures are logged and never reach the caller.
func CallAsync(triggerURL string, payload Payload, httpClient httpclient.Client, cb *gobreaker.CircuitBreaker) {
	if triggerURL == "" {
		return
	}

	go func() {
		fields := []zap.Field{
			zap.String("url", triggerURL),
			zap.String("event", payload.Event),
			zap.String("record_id", payload.RecordID),
		}
		err := circuitbreaker.Run(cb, func() error {
			return Call(triggerURL, payload, httpClient)
		})
		if circuitbreaker.IsOpen(err) {
			logger.Debug("Trigger call skipped", append(fields, zap.Error(err))...)
			return
		}
		if err != nil {
			logger.Warn("Trigger call failed", append(fields, zap.Error(err))...)
			return
		}
		logger.Debug("Trigger URL called successfully", fields...)
	}()
}
