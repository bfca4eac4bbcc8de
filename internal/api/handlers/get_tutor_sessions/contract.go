package get_tutor_sessions

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetTutorSessions(ctx context.Context, req *models.GetTutorSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
