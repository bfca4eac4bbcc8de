package domain

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// BookableWindow represents a concrete, date-specific interval derived from
// an availability rule after removing conflicts. Windows are computed fresh
// per query and never persisted.
type BookableWindow struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	RuleID    int64
}

// StartAt возвращает абсолютный момент начала окна
func (w *BookableWindow) StartAt() time.Time {
	return w.StartTime.OnDate(w.Date)
}

// EndAt возвращает абсолютный момент конца окна
func (w *BookableWindow) EndAt() time.Time {
	return w.EndTime.OnDate(w.Date)
}
