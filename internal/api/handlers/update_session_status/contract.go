package update_session_status

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	UpdateStatus(ctx context.Context, sessionID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
