package get_available_windows

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	getAvailableWindows "github.com/m04kA/TMS-BookingService/internal/usecase/get_available_windows"
)

const (
	msgInvalidTutorID  = "некорректный ID репетитора"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration = "длительность обязательна"
	msgInvalidDuration = "некорректная длительность сессии"
	msgTutorNotFound   = "репетитор не найден"
	msgDateOutOfRange  = "дата вне диапазона бронирования"
)

type Handler struct {
	useCase GetAvailableWindowsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/availability
// Query params: date (required, YYYY-MM-DD), duration (required, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем tutorId из URL
	tutorIDStr := vars["tutorId"]
	tutorID, err := strconv.ParseInt(tutorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tutors/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем duration из query параметров
	durationStr := r.URL.Query().Get("duration")
	if durationStr == "" {
		h.logger.Warn("GET /tutors/{id}/availability - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(tutorID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableWindows.ErrTutorNotFound):
			h.logger.Warn("GET /tutors/{id}/availability - Tutor not found: tutor_id=%d", tutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, getAvailableWindows.ErrOutOfRangeDate):
			h.logger.Warn("GET /tutors/{id}/availability - Date out of range: tutor_id=%d, date=%s", tutorID, dateStr)
			handlers.RespondBadRequest(w, msgDateOutOfRange)

		case errors.Is(err, getAvailableWindows.ErrInvalidDuration):
			h.logger.Warn("GET /tutors/{id}/availability - Invalid duration: tutor_id=%d, duration=%d", tutorID, durationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableWindows.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{id}/availability - Invalid input: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondBadRequest(w, msgInvalidTutorID)

		default:
			h.logger.Error("GET /tutors/{id}/availability - Failed to get windows: tutor_id=%d, date=%s, duration=%d, error=%v",
				tutorID, dateStr, durationMinutes, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tutors/{id}/availability - Windows retrieved successfully: tutor_id=%d, date=%s, windows_count=%d",
		tutorID, dateStr, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, response)
}
