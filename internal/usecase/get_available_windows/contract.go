package get_available_windows

import (
	"context"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// GetByTutorWithFilter получает сессии репетитора на конкретную дату
	GetByTutorWithFilter(ctx context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error)
}

// TutorServiceClient интерфейс клиента для TutorProfileService
type TutorServiceClient interface {
	GetTutor(ctx context.Context, tutorID int64) (*tutorservice.Tutor, error)
	GetAvailabilityRules(ctx context.Context, tutorID int64) ([]domain.AvailabilityRule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
