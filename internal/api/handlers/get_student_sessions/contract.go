package get_student_sessions

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetStudentSessions(ctx context.Context, req *models.GetStudentSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
