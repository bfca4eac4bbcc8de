package models

import (
	"errors"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")
)

// Request модели

// CancelSessionRequest запрос на отмену сессии
type CancelSessionRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса сессии
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetStudentSessionsRequest запрос на получение сессий студента
type GetStudentSessionsRequest struct {
	StudentID int64   `json:"studentId"`
	UserID    int64   `json:"userId"`
	Status    *string `json:"status,omitempty"`
}

// GetTutorSessionsRequest запрос на получение сессий репетитора
type GetTutorSessionsRequest struct {
	TutorID         int64      `json:"tutorId"`
	UserID          int64      `json:"userId"`
	StartDate       *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	IncludeCanceled bool       `json:"includeCanceled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTutorSessionsRequest) ToDomainFilter() (domain.TutorSessionsFilter, error) {
	filter := domain.TutorSessionsFilter{
		TutorID:         r.TutorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeCanceled: r.IncludeCanceled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID              int64   `json:"id"`
	TutorID         int64   `json:"tutorId"`
	StudentID       int64   `json:"studentId"`
	SubjectID       int64   `json:"subjectId"`
	TopicID         *int64  `json:"topicId,omitempty"`
	Date            string  `json:"date"`      // "2026-03-02"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:30"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		TutorID:            s.TutorID,
		StudentID:          s.StudentID,
		SubjectID:          s.SubjectID,
		TopicID:            s.TopicID,
		Date:               s.StartAt.Format(domain.DateFormat),
		StartTime:          s.StartAt.Format(domain.TimeFormat),
		EndTime:            s.EndAt.Format(domain.TimeFormat),
		DurationMinutes:    s.DurationMinutes(),
		Status:             string(s.Status),
		Price:              s.Price,
		Notes:              s.Notes,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	if sessions == nil {
		return &SessionListResponse{
			Sessions: []SessionResponse{},
		}
	}

	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, len(sessions)),
	}

	for i, session := range sessions {
		if sessionResp := FromDomainSession(session); sessionResp != nil {
			resp.Sessions[i] = *sessionResp
		}
	}

	return resp
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus с валидацией
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)

	// Валидируем статус
	validStatuses := []domain.SessionStatus{
		domain.StatusBooked,
		domain.StatusCompleted,
		domain.StatusCanceled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
