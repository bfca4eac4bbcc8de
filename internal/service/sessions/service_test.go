package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	sessionRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/session"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
	"github.com/m04kA/TMS-BookingService/pkg/ptr"
)

type mockRepo struct {
	session     *domain.Session
	sessions    []*domain.Session
	getErr      error
	cancelErr   error
	updateErr   error
	cancelledID int64
	updatedID   int64
	updatedTo   domain.SessionStatus
}

func (m *mockRepo) GetByID(_ context.Context, _ int64) (*domain.Session, error) {
	return m.session, m.getErr
}

func (m *mockRepo) GetByStudentID(_ context.Context, _ int64, _ *domain.SessionStatus) ([]*domain.Session, error) {
	return m.sessions, m.getErr
}

func (m *mockRepo) GetByTutorWithFilter(_ context.Context, _ domain.TutorSessionsFilter) ([]*domain.Session, error) {
	return m.sessions, m.getErr
}

func (m *mockRepo) UpdateStatus(_ context.Context, id int64, status domain.SessionStatus) error {
	m.updatedID = id
	m.updatedTo = status
	return m.updateErr
}

func (m *mockRepo) Cancel(_ context.Context, id int64, _ string) error {
	m.cancelledID = id
	return m.cancelErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookedSession() *domain.Session {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID:        5,
		TutorID:   1,
		StudentID: 42,
		SubjectID: 3,
		StartAt:   start,
		EndAt:     start.Add(90 * time.Minute),
		Status:    domain.StatusBooked,
		Price:     37.50,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &mockRepo{session: bookedSession()}
	svc := NewService(repo, nopLogger{})

	// Студент сессии
	resp, err := svc.GetByID(context.Background(), 5, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)

	// Репетитор сессии
	_, err = svc.GetByID(context.Background(), 5, 1)
	require.NoError(t, err)

	// Посторонний пользователь
	_, err = svc.GetByID(context.Background(), 5, 777)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: sessionRepo.ErrSessionNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99, 42)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetStudentSessions(t *testing.T) {
	repo := &mockRepo{sessions: []*domain.Session{bookedSession()}}
	svc := NewService(repo, nopLogger{})

	// Сам студент
	resp, err := svc.GetStudentSessions(context.Background(), &models.GetStudentSessionsRequest{StudentID: 42, UserID: 42})
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)

	// Чужой пользователь
	_, err = svc.GetStudentSessions(context.Background(), &models.GetStudentSessionsRequest{StudentID: 42, UserID: 1})
	require.ErrorIs(t, err, ErrAccessDenied)

	// Некорректный статус
	_, err = svc.GetStudentSessions(context.Background(), &models.GetStudentSessionsRequest{
		StudentID: 42, UserID: 42, Status: ptr.Ptr("unknown"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTutorSessions(t *testing.T) {
	repo := &mockRepo{sessions: []*domain.Session{bookedSession()}}
	svc := NewService(repo, nopLogger{})

	// Сам репетитор
	resp, err := svc.GetTutorSessions(context.Background(), &models.GetTutorSessionsRequest{TutorID: 1, UserID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)

	// Чужой пользователь
	_, err = svc.GetTutorSessions(context.Background(), &models.GetTutorSessionsRequest{TutorID: 1, UserID: 42})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	repo := &mockRepo{session: bookedSession()}
	svc := NewService(repo, nopLogger{})

	req := &models.CancelSessionRequest{UserID: 42, CancellationReason: "student is sick"}
	require.NoError(t, svc.Cancel(context.Background(), 5, req))
	assert.Equal(t, int64(5), repo.cancelledID)
}

func TestCancel_OnlyBookedSessions(t *testing.T) {
	session := bookedSession()
	session.Status = domain.StatusCompleted
	repo := &mockRepo{session: session}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSessionRequest{UserID: 42})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &mockRepo{session: bookedSession()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelSessionRequest{UserID: 777})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus(t *testing.T) {
	repo := &mockRepo{session: bookedSession()}
	svc := NewService(repo, nopLogger{})

	req := &models.UpdateStatusRequest{UserID: 1, Status: "completed"}
	require.NoError(t, svc.UpdateStatus(context.Background(), 5, req))
	assert.Equal(t, domain.StatusCompleted, repo.updatedTo)
}

func TestUpdateStatus_TutorOnly(t *testing.T) {
	repo := &mockRepo{session: bookedSession()}
	svc := NewService(repo, nopLogger{})

	// Студент не может зафиксировать итог занятия
	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 42, Status: "completed"})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_AllowedStatuses(t *testing.T) {
	repo := &mockRepo{session: bookedSession()}
	svc := NewService(repo, nopLogger{})

	// Отмена через UpdateStatus запрещена
	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "canceled"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	// Возврат в booked запрещён
	err = svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "booked"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	// no_show допустим
	require.NoError(t, svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "no_show"}))
	assert.Equal(t, domain.StatusNoShow, repo.updatedTo)
}

func TestUpdateStatus_TerminalSession(t *testing.T) {
	session := bookedSession()
	session.Status = domain.StatusCompleted
	repo := &mockRepo{session: session}
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "no_show"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}
