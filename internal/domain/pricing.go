package domain

import "math"

// SessionPrice derives the session price from the tutor's hourly rate and
// the session duration. The result is rounded to 2 decimal places so that
// persisted prices never accumulate floating-point drift.
func SessionPrice(hourlyRate float64, durationMinutes int) float64 {
	raw := hourlyRate * float64(durationMinutes) / 60.0
	return math.Round(raw*100) / 100
}
