package insurance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCharge(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25900, "$25,900.00"},
		{1725.5523, "$1,725.55"},
		{0, "$0.00"},
		{1234567.891, "$1,234,567.89"},
		{-500, "$-500.00"},
		{-1234.5, "$-1,234.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCharge(tt.in))
	}
	assert.Equal(t, "Predicted insurance charge: $25,900.00", PredictionMessage(25900))
}
