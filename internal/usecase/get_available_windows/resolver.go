package get_available_windows

import (
	"fmt"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
)

// resolveWindows вычисляет доступные для бронирования окна на указанную дату
//
// Алгоритм:
// 1. Берём активные правила доступности, день недели которых совпадает с датой
// 2. Каждое правило даёт окно-кандидат [date+start, date+end)
// 3. Окно отбрасывается ЦЕЛИКОМ, если с ним пересекается хотя бы одна
//    неотменённая сессия. Окно вокруг конфликта не разрезается - одно
//    пересечение убирает всё окно (политика atomic exclusion)
// 4. Из выживших окон остаются те, в которые длительность помещается
//    от начала окна: start + duration <= end. Другие точки старта внутри
//    окна не предлагаются
//
// Перекрывающиеся правила допустимы и просто дают перекрывающиеся окна -
// дедупликация, если нужна, происходит на стороне отображения
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

		// Проверяем, что длительность помещается в окно от его начала
		// Ошибка AddMinutes означает выход за полночь - туда сессия не помещается тем более
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

// hasConflictingSession проверяет, пересекается ли интервал окна хотя бы
// с одной неотменённой сессией
//
// Интервалы пересекаются, только если:
// - начало сессии СТРОГО раньше конца окна И
// - конец сессии СТРОГО позже начала окна
//
// Строгие неравенства: граничащие интервалы (сессия заканчивается ровно там,
// где начинается окно, или наоборот) пересечением не считаются
//
// Сессия с некорректным интервалом (start >= end) - это испорченные данные
// ledger; возвращаем ошибку, а не пропускаем запись
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
