package get_student_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidStatus    = "некорректный статус сессии"
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

// Handle GET /api/v1/students/{studentId}/sessions
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем studentId из URL
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{studentId}/sessions - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{studentId}/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetStudentSessionsRequest{
		StudentID: studentID,
		UserID:    userID,
		Status:    statusPtr,
	}

	// Получаем сессии студента
	result, err := h.service.GetStudentSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /students/{studentId}/sessions - Access denied: student_id=%d, user_id=%d",
				studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /students/{studentId}/sessions - Invalid status: student_id=%d, status=%s",
				studentID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{studentId}/sessions - Failed to get sessions: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{studentId}/sessions - Sessions retrieved successfully: student_id=%d, count=%d",
		studentID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
