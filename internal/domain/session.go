package domain

import (
	"time"
)

// SessionStatus represents the lifecycle status of a tutoring session
type SessionStatus string

const (
	StatusBooked    SessionStatus = "booked"
	StatusCompleted SessionStatus = "completed"
	StatusCanceled  SessionStatus = "canceled"
	StatusNoShow    SessionStatus = "no_show"
)

// Session represents a tutoring engagement between a tutor and a student
// with a fixed absolute time range
type Session struct {
	ID        int64
	TutorID   int64
	StudentID int64
	SubjectID int64
	TopicID   *int64 // опционально - конкретная тема внутри предмета
	StartAt   time.Time
	EndAt     time.Time
	Status    SessionStatus
	Price     float64
	Notes     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the session occupies its time range for
// conflict checks. Canceled sessions are kept for history but never block.
func (s *Session) BlocksSlot() bool {
	return s.Status != StatusCanceled
}

// CanBeCancelled returns true if the session can still be cancelled
func (s *Session) CanBeCancelled() bool {
	return s.Status == StatusBooked
}

// IsFinished returns true if the session reached a terminal state
func (s *Session) IsFinished() bool {
	return s.Status == StatusCompleted || s.Status == StatusCanceled || s.Status == StatusNoShow
}

// HasValidInterval returns true if the stored time range is well-formed.
// A violation is a data-integrity fault, not a recoverable condition.
func (s *Session) HasValidInterval() bool {
	return s.StartAt.Before(s.EndAt)
}

// DurationMinutes возвращает длительность сессии в минутах
func (s *Session) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt) / time.Minute)
}

// TutorSessionsFilter фильтр для получения сессий репетитора
type TutorSessionsFilter struct {
	TutorID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *SessionStatus // Фильтр по статусу (опционально)
	IncludeCanceled bool           // Включать ли отменённые сессии
}
