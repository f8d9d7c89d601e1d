package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Display(t *testing.T) {
	c := NewConverter(80, "₹")

	tests := []struct {
		name     string
		amount   float64
		expected int64
	}{
		{name: "Zero", amount: 0, expected: 0},
		{name: "Whole amount", amount: 35, expected: 2800},
		{name: "Rounds down", amount: 109.95, expected: 8796},
		{name: "Rounds half up", amount: 0.00625, expected: 1},
		{name: "Small amount", amount: 22.3, expected: 1784},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Display(tt.amount))
		})
	}
}

func TestConverter_Format(t *testing.T) {
	c := NewConverter(80, "₹")

	assert.Equal(t, "₹ 2800", c.Format(35))
	assert.Equal(t, "₹", c.Symbol())
}
