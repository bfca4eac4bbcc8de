package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	if req.SubjectID <= 0 {
		return fmt.Errorf("%w: subjectID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	// Сессия не должна пересекать полночь - отклоняем явно,
	// а не даём арифметике времени молча перенестись на следующий день
	if _, err := req.StartTime.AddMinutes(req.DurationMinutes); err != nil {
		return fmt.Errorf("%w: session would cross midnight", ErrInvalidDuration)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrOutOfRangeDate
	}

	// Проверяем, что дата не превышает горизонт бронирования
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, domain.BookingHorizonDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrOutOfRangeDate, domain.BookingHorizonDays)
	}

	return nil
}

// validateBookingTime проверяет, что сегодняшнее окно ещё не началось
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return ErrTooLateToBook
	}

	return nil
}

// validateTopic проверяет, что тема (если указана) принадлежит предмету
func validateTopic(subject *catalogservice.Subject, topicID *int64) error {
	if topicID == nil {
		return nil
	}
	if !subject.HasTopic(*topicID) {
		return ErrTopicNotInSubject
	}
	return nil
}

// resolveWindows повторяет вычисление доступных окон на стороне бронирования
// Клиентским данным об окнах доверять нельзя - окна всегда пересчитываются
// по ledger, прочитанному с блокировкой строк внутри транзакции
//
// Политика atomic exclusion: окно-кандидат отбрасывается целиком, если с ним
// пересекается хотя бы одна неотменённая сессия
func resolveWindows(
	rules []domain.AvailabilityRule,
	sessions []*domain.Session,
	date time.Time,
	durationMinutes int,
) ([]domain.BookableWindow, error) {
	windows := make([]domain.BookableWindow, 0)

	for _, rule := range rules {
		if !rule.AppliesTo(date) {
			continue
		}

		conflict, err := hasConflictingSession(rule.StartTime.OnDate(date), rule.EndTime.OnDate(date), sessions)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}

		windowEnd, err := rule.StartTime.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}
		if windowEnd.IsAfter(rule.EndTime) {
			continue
		}

		windows = append(windows, domain.BookableWindow{
			Date:      date,
			StartTime: rule.StartTime,
			EndTime:   windowEnd,
			RuleID:    rule.ID,
		})
	}

	return windows, nil
}

// hasConflictingSession проверяет пересечение окна с неотменёнными сессиями
// Используем строгие неравенства - граничащие интервалы не считаются пересечением
func hasConflictingSession(windowStart, windowEnd time.Time, sessions []*domain.Session) (bool, error) {
	for _, s := range sessions {
		// Отменённые сессии не блокируют окна
		if !s.BlocksSlot() {
			continue
		}

		if !s.HasValidInterval() {
			return false, fmt.Errorf("%w: session id=%d has start_at >= end_at", ErrDataIntegrity, s.ID)
		}

		if s.StartAt.Before(windowEnd) && s.EndAt.After(windowStart) {
			return true, nil
		}
	}

	return false, nil
}

// findWindow ищет окно с запрошенным временем начала
func findWindow(windows []domain.BookableWindow, startTime types.TimeString) *domain.BookableWindow {
	for i := range windows {
		if windows[i].StartTime == startTime {
			return &windows[i]
		}
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
