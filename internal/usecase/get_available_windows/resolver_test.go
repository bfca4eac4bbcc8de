package get_available_windows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func rule(id int64, day time.Weekday, start, end types.TimeString) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		ID:        id,
		TutorID:   1,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
}

func bookedSession(id int64, date time.Time, start, end types.TimeString) *domain.Session {
	return &domain.Session{
		ID:      id,
		TutorID: 1,
		StartAt: start.OnDate(date),
		EndAt:   end.OnDate(date),
		Status:  domain.StatusBooked,
	}
}

func TestResolveWindows_SingleRuleNoSessions(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(7, time.Monday, "09:00", "12:00")}

	windows, err := resolveWindows(rules, nil, monday, 60)
	require.NoError(t, err)

	require.Len(t, windows, 1)
	assert.Equal(t, types.TimeString("09:00"), windows[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), windows[0].EndTime)
	assert.Equal(t, int64(7), windows[0].RuleID)
	assert.Equal(t, monday, windows[0].Date)
}

func TestResolveWindows_ConflictRemovesWholeWindow(t *testing.T) {
	// Одна сессия в середине окна убирает окно целиком, а не вырезает кусок
	rules := []domain.AvailabilityRule{rule(7, time.Monday, "09:00", "12:00")}
	sessions := []*domain.Session{bookedSession(1, monday, "10:00", "10:30")}

	windows, err := resolveWindows(rules, sessions, monday, 60)
	require.NoError(t, err)
	assert.Empty(t, windows)

	// Даже короткая длительность не возвращает свободный хвост окна
	windows, err = resolveWindows(rules, sessions, monday, 15)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestResolveWindows_DurationMustFitFromWindowStart(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "10:00")}

	windows, err := resolveWindows(rules, nil, monday, 90)
	require.NoError(t, err)
	assert.Empty(t, windows)

	// Ровно помещающаяся длительность допустима
	windows, err = resolveWindows(rules, nil, monday, 60)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, types.TimeString("10:00"), windows[0].EndTime)
}

func TestResolveWindows_CanceledSessionDoesNotBlock(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "17:00")}

	canceled := bookedSession(1, monday, "10:00", "11:00")
	canceled.Status = domain.StatusCanceled

	windows, err := resolveWindows(rules, []*domain.Session{canceled}, monday, 60)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, types.TimeString("09:00"), windows[0].StartTime)
}

func TestResolveWindows_CompletedSessionBlocks(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "17:00")}

	completed := bookedSession(1, monday, "10:00", "11:00")
	completed.Status = domain.StatusCompleted

	windows, err := resolveWindows(rules, []*domain.Session{completed}, monday, 60)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestResolveWindows_AdjacentSessionIsNotAConflict(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "12:00")}

	// Сессии, граничащие с окном, не считаются пересечением
	sessions := []*domain.Session{
		bookedSession(1, monday, "08:00", "09:00"),
		bookedSession(2, monday, "12:00", "13:00"),
	}

	windows, err := resolveWindows(rules, sessions, monday, 60)
	require.NoError(t, err)
	require.Len(t, windows, 1)
}

func TestResolveWindows_SkipsInactiveAndOtherWeekdays(t *testing.T) {
	inactive := rule(1, time.Monday, "09:00", "12:00")
	inactive.IsActive = false

	rules := []domain.AvailabilityRule{
		inactive,
		rule(2, time.Tuesday, "09:00", "12:00"),
		rule(3, time.Monday, "14:00", "16:00"),
	}

	windows, err := resolveWindows(rules, nil, monday, 60)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, int64(3), windows[0].RuleID)
}

func TestResolveWindows_OverlappingRulesProduceOverlappingWindows(t *testing.T) {
	// Перекрывающиеся правила допустимы - движок не дедуплицирует окна
	rules := []domain.AvailabilityRule{
		rule(1, time.Monday, "09:00", "12:00"),
		rule(2, time.Monday, "10:00", "13:00"),
	}

	windows, err := resolveWindows(rules, nil, monday, 60)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, types.TimeString("09:00"), windows[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), windows[1].StartTime)
}

func TestResolveWindows_InvalidStoredIntervalIsFatal(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "12:00")}

	broken := &domain.Session{
		ID:      42,
		TutorID: 1,
		StartAt: types.TimeString("11:00").OnDate(monday),
		EndAt:   types.TimeString("10:00").OnDate(monday),
		Status:  domain.StatusBooked,
	}

	_, err := resolveWindows(rules, []*domain.Session{broken}, monday, 60)
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestResolveWindows_SessionOnAnotherDayDoesNotBlock(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "12:00")}

	tuesday := monday.AddDate(0, 0, 1)
	sessions := []*domain.Session{bookedSession(1, tuesday, "09:00", "12:00")}

	windows, err := resolveWindows(rules, sessions, monday, 60)
	require.NoError(t, err)
	require.Len(t, windows, 1)
}
