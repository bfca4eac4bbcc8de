package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionPrice(t *testing.T) {
	tests := []struct {
		name            string
		hourlyRate      float64
		durationMinutes int
		want            float64
	}{
		{name: "90 minutes at 25/h", hourlyRate: 25, durationMinutes: 90, want: 37.50},
		{name: "30 minutes at 40/h", hourlyRate: 40, durationMinutes: 30, want: 20.00},
		{name: "full hour", hourlyRate: 55.5, durationMinutes: 60, want: 55.50},
		{name: "rate with cents", hourlyRate: 19.99, durationMinutes: 45, want: 14.99},
		{name: "zero duration", hourlyRate: 25, durationMinutes: 0, want: 0},
		{name: "free tutor", hourlyRate: 0, durationMinutes: 60, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SessionPrice(tt.hourlyRate, tt.durationMinutes), 1e-9)
		})
	}
}
