package trigger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mentorsetu/mentorsetu-api/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_PostsPayload(t *testing.T) {
	received := make(chan Payload, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var p Payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		received <- p
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := Call(server.URL, Payload{Event: "booking_confirmed", RecordID: "b-1", Timestamp: time.Now()}, httpclient.NewStandardClient())
	require.NoError(t, err)

	p := <-received
	assert.Equal(t, "booking_confirmed", p.Event)
	assert.Equal(t, "b-1", p.RecordID)
}

func TestCall_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := Call(server.URL, Payload{Event: "booking_failed"}, httpclient.NewStandardClient())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestCall_EmptyURLIsNoop(t *testing.T) {
	assert.NoError(t, Call("", Payload{}, nil))
}

func TestCallAsync_Delivers(t *testing.T) {
	hit := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
	}))
	defer server.Close()

	CallAsync(server.URL, Payload{Event: "booking_cancelled", RecordID: "b-2"}, httpclient.NewStandardClient(), nil)

	select {
	case <-hit:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger was not called")
	}
}
