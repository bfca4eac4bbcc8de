package tutorservice

import (
	"fmt"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Tutor модель репетитора из TutorProfileService
type Tutor struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	HourlyRate  float64 `json:"hourly_rate"`
	Currency    string  `json:"currency"`
	IsActive    bool    `json:"is_active"`
}

// AvailabilityRule модель правила доступности из TutorProfileService
// Дни недели приходят строками в нижнем регистре ("monday" .. "sunday")
type AvailabilityRule struct {
	ID        int64  `json:"id"`
	TutorID   int64  `json:"tutor_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"` // "09:00"
	EndTime   string `json:"end_time"`   // "17:00"
	IsActive  bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от TutorProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToDomain конвертирует правило в domain модель с валидацией
// Правило с некорректным временем или днём недели - это испорченные данные
// профиля, такой ответ отклоняется целиком
func (r *AvailabilityRule) ToDomain() (domain.AvailabilityRule, error) {
	weekday, ok := weekdayNames[r.DayOfWeek]
	if !ok {
		return domain.AvailabilityRule{}, fmt.Errorf("%w: unknown day of week %q", ErrInvalidResponse, r.DayOfWeek)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return domain.AvailabilityRule{}, fmt.Errorf("%w: rule id=%d start time: %v", ErrInvalidResponse, r.ID, err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return domain.AvailabilityRule{}, fmt.Errorf("%w: rule id=%d end time: %v", ErrInvalidResponse, r.ID, err)
	}

	if !startTime.IsBefore(endTime) {
		return domain.AvailabilityRule{}, fmt.Errorf("%w: rule id=%d has start %s >= end %s",
			ErrInvalidResponse, r.ID, startTime, endTime)
	}

	return domain.AvailabilityRule{
		ID:        r.ID,
		TutorID:   r.TutorID,
		DayOfWeek: weekday,
		StartTime: startTime,
		EndTime:   endTime,
		IsActive:  r.IsActive,
	}, nil
}
