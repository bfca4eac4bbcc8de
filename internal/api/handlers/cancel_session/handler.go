package cancel_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgReasonTooLong      = "слишком длинная причина отмены"
	msgNotFound           = "сессия не найдена"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "сессия не может быть отменена"
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

// Handle PATCH /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CancelSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Cancellation reason too long: session_id=%d", sessionID)
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	// Конвертируем в модель сервиса
	serviceReq := req.ToServiceRequest(userID)

	// Отменяем сессию
	err = h.service.Cancel(r.Context(), sessionID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Access denied: session_id=%d, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrCannotCancel):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Cannot cancel: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /sessions/{id}/cancel - Failed to cancel session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/cancel - Session cancelled successfully: session_id=%d, user_id=%d",
		sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
