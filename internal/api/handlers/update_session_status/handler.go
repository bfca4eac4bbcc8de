package update_session_status

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
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "сессия не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "некорректный статус сессии"
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

// Handle PATCH /api/v1/sessions/{sessionId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/status - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса
	serviceReq := req.ToServiceRequest(userID)

	// Обновляем статус сессии
	err = h.service.UpdateStatus(r.Context(), sessionID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/status - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/status - Access denied: session_id=%d, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrInvalidStatus), errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/status - Invalid status: session_id=%d, status=%s",
				sessionID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /sessions/{id}/status - Failed to update status: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/status - Status updated successfully: session_id=%d, status=%s, user_id=%d",
		sessionID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
