package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/TMS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранное окно недоступно"
	msgTutorNotFound      = "репетитор не найден"
	msgSubjectNotFound    = "предмет не найден"
	msgTopicNotInSubject  = "тема не относится к выбранному предмету"
	msgDateOutOfRange     = "дата вне диапазона бронирования"
	msgInvalidDuration    = "некорректная длительность сессии"
	msgTooLateToBook      = "слишком поздно для бронирования этого окна"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем studentID из контекста (через middleware Auth)
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		// Определяем тип ошибки парсинга
		if errors.Is(err, types.ErrInvalidFormat) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: student_id=%d, tutor_id=%d, date=%s, time=%s",
				studentID, req.TutorID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTutorNotFound):
			h.logger.Warn("POST /bookings - Tutor not found: tutor_id=%d", req.TutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, createBooking.ErrSubjectNotFound):
			h.logger.Warn("POST /bookings - Subject not found: subject_id=%d", req.SubjectID)
			handlers.RespondNotFound(w, msgSubjectNotFound)

		case errors.Is(err, createBooking.ErrTopicNotInSubject):
			h.logger.Warn("POST /bookings - Topic not in subject: subject_id=%d, topic_id=%v", req.SubjectID, req.TopicID)
			handlers.RespondBadRequest(w, msgTopicNotInSubject)

		case errors.Is(err, createBooking.ErrOutOfRangeDate):
			h.logger.Warn("POST /bookings - Date out of range: student_id=%d, date=%s", studentID, req.Date)
			handlers.RespondBadRequest(w, msgDateOutOfRange)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: student_id=%d, duration=%d", studentID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: student_id=%d, tutor_id=%d", studentID, req.TutorID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: student_id=%d, tutor_id=%d, error=%v",
				studentID, req.TutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Session created successfully: session_id=%d, student_id=%d, tutor_id=%d, price=%.2f",
		result.ID, studentID, req.TutorID, result.Price)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
