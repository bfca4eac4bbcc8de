package get_available_windows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
)

type mockSessionRepo struct {
	sessions []*domain.Session
	err      error
}

func (m *mockSessionRepo) GetByTutorWithFilter(_ context.Context, _ domain.TutorSessionsFilter) ([]*domain.Session, error) {
	return m.sessions, m.err
}

type mockTutorClient struct {
	tutor    *tutorservice.Tutor
	tutorErr error
	rules    []domain.AvailabilityRule
	rulesErr error
}

func (m *mockTutorClient) GetTutor(_ context.Context, _ int64) (*tutorservice.Tutor, error) {
	return m.tutor, m.tutorErr
}

func (m *mockTutorClient) GetAvailabilityRules(_ context.Context, _ int64) ([]domain.AvailabilityRule, error) {
	return m.rules, m.rulesErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *mockSessionRepo, client *mockTutorClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, client, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsWindows(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	client := &mockTutorClient{
		tutor: &tutorservice.Tutor{ID: 1, HourlyRate: 25},
		rules: []domain.AvailabilityRule{rule(7, time.Monday, "09:00", "12:00")},
	}
	uc := newTestUseCase(&mockSessionRepo{}, client, now)

	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1)
	assert.Equal(t, Window{StartTime: "09:00", EndTime: "10:00", RuleID: 7}, resp.Windows[0])
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ReadIsIdempotent(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	client := &mockTutorClient{
		tutor: &tutorservice.Tutor{ID: 1},
		rules: []domain.AvailabilityRule{
			rule(1, time.Monday, "09:00", "12:00"),
			rule(2, time.Monday, "14:00", "18:00"),
		},
	}
	repo := &mockSessionRepo{sessions: []*domain.Session{bookedSession(1, monday, "15:00", "16:00")}}
	uc := newTestUseCase(repo, client, now)

	req := &Request{TutorID: 1, Date: monday, DurationMinutes: 60}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_TutorNotFound(t *testing.T) {
	client := &mockTutorClient{tutorErr: tutorservice.ErrTutorNotFound}
	uc := newTestUseCase(&mockSessionRepo{}, client, monday.AddDate(0, 0, -3))

	_, err := uc.Execute(context.Background(), &Request{TutorID: 99, Date: monday, DurationMinutes: 60})
	require.ErrorIs(t, err, ErrTutorNotFound)
}

func TestExecute_DateValidation(t *testing.T) {
	now := monday
	client := &mockTutorClient{tutor: &tutorservice.Tutor{ID: 1}}
	uc := newTestUseCase(&mockSessionRepo{}, client, now)

	// Дата в прошлом
	_, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday.AddDate(0, 0, -1), DurationMinutes: 60})
	require.ErrorIs(t, err, ErrOutOfRangeDate)

	// Дата за горизонтом бронирования
	_, err = uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday.AddDate(0, 0, domain.BookingHorizonDays+1), DurationMinutes: 60})
	require.ErrorIs(t, err, ErrOutOfRangeDate)

	// Граница горизонта ещё допустима
	resp, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday.AddDate(0, 0, domain.BookingHorizonDays), DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

func TestExecute_DurationValidation(t *testing.T) {
	uc := newTestUseCase(&mockSessionRepo{}, &mockTutorClient{}, monday)

	_, err := uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday, DurationMinutes: 0})
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = uc.Execute(context.Background(), &Request{TutorID: 1, Date: monday, DurationMinutes: domain.MaxSessionDurationMinutes + 15})
	require.ErrorIs(t, err, ErrInvalidDuration)
}
