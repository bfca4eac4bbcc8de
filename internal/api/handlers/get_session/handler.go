package get_session

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
	msgInvalidSessionID = "некорректный ID сессии"
	msgNotFound         = "сессия не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем сессию (сервис сам проверит права доступа)
	session, err := h.service.GetByID(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /sessions/{id} - Access denied: session_id=%d, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /sessions/{id} - Failed to get session: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/{id} - Session retrieved successfully: session_id=%d, user_id=%d",
		sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
