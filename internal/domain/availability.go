package domain

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// AvailabilityRule represents a recurring weekly time window during which
// a tutor is in principle bookable. Rules are owned by the tutor profile
// service and are read-only for this service.
type AvailabilityRule struct {
	ID        int64
	TutorID   int64
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// AppliesTo returns true if the rule is active and matches the weekday of the date
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	return r.IsActive && r.DayOfWeek == WeekdayOfDate(date)
}

// WeekdayOfDate возвращает день недели календарной даты
// Дата нормализуется до полуночи UTC, чтобы день недели не зависел
// от времени суток и часового пояса, в котором дата была получена
func WeekdayOfDate(date time.Time) time.Weekday {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).Weekday()
}
