package get_tutor_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden      = "доступ запрещен"
	msgInvalidFilter  = "некорректные параметры фильтрации"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/sessions
// Query params: startDate, endDate, status, includeCanceled (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tutorId из URL
	vars := mux.Vars(r)
	tutorIDStr := vars["tutorId"]

	tutorID, err := strconv.ParseInt(tutorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{tutorId}/sessions - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tutors/{tutorId}/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем параметры фильтрации из query
	query := r.URL.Query()
	includeCanceled := query.Get("includeCanceled") == "true"

	// Формируем запрос к сервису (с парсингом дат периода)
	serviceReq, err := ToServiceRequest(tutorID, userID,
		query.Get("startDate"), query.Get("endDate"), query.Get("status"), includeCanceled)
	if err != nil {
		h.logger.Warn("GET /tutors/{tutorId}/sessions - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем сессии репетитора
	result, err := h.service.GetTutorSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /tutors/{tutorId}/sessions - Access denied: tutor_id=%d, user_id=%d",
				tutorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{tutorId}/sessions - Invalid filter: tutor_id=%d", tutorID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /tutors/{tutorId}/sessions - Failed to get sessions: tutor_id=%d, error=%v",
				tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tutors/{tutorId}/sessions - Sessions retrieved successfully: tutor_id=%d, count=%d",
		tutorID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
