package get_available_windows

import (
	"fmt"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата попадает в горизонт бронирования
func validateDate(requestDate time.Time, now time.Time) error {
	// Дата в прошлом не бронируется
	if isDateInPast(requestDate, now) {
		return ErrOutOfRangeDate
	}

	// Дата не должна превышать горизонт бронирования платформы
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, domain.BookingHorizonDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrOutOfRangeDate, domain.BookingHorizonDays)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
