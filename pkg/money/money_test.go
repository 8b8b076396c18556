package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount   int
		expected string
	}{
		{amount: 0, expected: "₹0"},
		{amount: 999, expected: "₹999"},
		{amount: 2500, expected: "₹2,500"},
		{amount: 1250000, expected: "₹1,250,000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatINR(tt.amount))
		})
	}
}

func TestFormatINRPlain(t *testing.T) {
	assert.Equal(t, "INR 4,000", FormatINRPlain(4000))
}
