package create_booking

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	createBooking "github.com/m04kA/TMS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TutorID         int64   `json:"tutorId"`
	SubjectID       int64   `json:"subjectId"`
	TopicID         *int64  `json:"topicId,omitempty"`
	Date            string  `json:"date"`      // "2026-03-02"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID              int64   `json:"id"`
	TutorID         int64   `json:"tutorId"`
	StudentID       int64   `json:"studentId"`
	SubjectID       int64   `json:"subjectId"`
	TopicID         *int64  `json:"topicId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	HourlyRate      float64 `json:"hourlyRate"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StudentID:       studentID,
		TutorID:         r.TutorID,
		SubjectID:       r.SubjectID,
		TopicID:         r.TopicID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *SessionResponse {
	return &SessionResponse{
		ID:              resp.ID,
		TutorID:         resp.TutorID,
		StudentID:       resp.StudentID,
		SubjectID:       resp.SubjectID,
		TopicID:         resp.TopicID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Price:           resp.Price,
		HourlyRate:      resp.HourlyRate,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
