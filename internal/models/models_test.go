package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusCancelled, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCompleted, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSubmissionState_Transitions(t *testing.T) {
	happy := []SubmissionState{
		StateEditing, StateValidating, StateSubmitting, StateProcessingPayment, StatePersisted, StateClosed,
	}
	for i := 0; i < len(happy)-1; i++ {
		assert.True(t, happy[i].CanTransitionTo(happy[i+1]), "%s -> %s", happy[i], happy[i+1])
	}

	assert.True(t, StateValidating.CanTransitionTo(StateRejected))
	assert.True(t, StateProcessingPayment.CanTransitionTo(StateCancelled))
	assert.False(t, StatePersisted.CanTransitionTo(StateFailed))
	assert.False(t, StateClosed.CanTransitionTo(StateEditing))

	assert.True(t, StateClosed.IsTerminal())
	assert.False(t, StateProcessingPayment.IsTerminal())
}

func TestPriceBucket(t *testing.T) {
	b, ok := ParsePriceBucket(" Medium ")
	require.True(t, ok)
	assert.Equal(t, PriceBucketMedium, b)

	_, ok = ParsePriceBucket("cheap")
	assert.False(t, ok)

	assert.True(t, PriceBucketLow.Contains(2499))
	assert.False(t, PriceBucketLow.Contains(2500))
	assert.True(t, PriceBucketMedium.Contains(2500))
	assert.False(t, PriceBucketMedium.Contains(3500))
	assert.True(t, PriceBucketHigh.Contains(3500))
	assert.True(t, PriceBucketAll.Contains(1))
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	var fromTimestamp Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-09T00:00:00.000Z"`), &fromTimestamp))
	assert.Equal(t, d, fromTimestamp)

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2025"`), &back))
}

func TestDate_Compare(t *testing.T) {
	d := Date{Year: 2025, Month: time.March, Day: 9}
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), d.Time())
	assert.True(t, d.Before(Date{Year: 2025, Month: time.March, Day: 10}))
	assert.True(t, d.After(Date{Year: 2025, Month: time.February, Day: 28}))
	assert.Equal(t, d, DateOf(time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)))
}

func TestEnumerations(t *testing.T) {
	assert.Len(t, TimeSlots, 12)
	assert.True(t, IsTimeSlot("09:00 AM"))
	assert.True(t, IsTimeSlot("08:00 PM"))
	assert.False(t, IsTimeSlot("09:00 PM"))

	assert.Len(t, SessionTypes, 5)
	assert.True(t, IsSessionType("System Design"))
	assert.False(t, IsSessionType("system design"))
}

func TestBookingPatch_Apply(t *testing.T) {
	cancelled := BookingStatusCancelled
	b := Booking{ID: "x", Status: BookingStatusConfirmed, Amount: 2500}
	out := BookingPatch{Status: &cancelled}.Apply(b)
	assert.Equal(t, BookingStatusCancelled, out.Status)
	assert.Equal(t, 2500, out.Amount)
	assert.Equal(t, b, BookingPatch{}.Apply(b))
}
