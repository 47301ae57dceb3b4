package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakTime(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		expected float64
	}{
		{name: "zero clamps to minimum", duration: 0, expected: 5.0 / 60.0},
		{name: "short task clamps to minimum", duration: 0.5, expected: 5.0 / 60.0},
		{name: "linear region", duration: 1.2, expected: 0.12},
		{name: "upper edge", duration: 2.5, expected: 0.25},
		{name: "long task clamps to maximum", duration: 3, expected: 15.0 / 60.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BreakTime(tt.duration), 1e-12)
		})
	}
}

func TestBreakTime_IsNonDecreasing(t *testing.T) {
	previous := BreakTime(0)
	for d := 0.0; d <= 5; d += 0.01 {
		current := BreakTime(d)
		assert.GreaterOrEqual(t, current, previous)
		assert.GreaterOrEqual(t, current, MinBreak)
		assert.LessOrEqual(t, current, MaxBreak)
		previous = current
	}
}
