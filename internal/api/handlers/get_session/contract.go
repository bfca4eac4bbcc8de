package get_session

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
