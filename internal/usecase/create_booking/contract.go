package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	GetByTutorWithFilter(ctx context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error)
}

// TutorServiceClient интерфейс клиента для TutorProfileService
type TutorServiceClient interface {
	GetTutor(ctx context.Context, tutorID int64) (*tutorservice.Tutor, error)
	GetAvailabilityRules(ctx context.Context, tutorID int64) ([]domain.AvailabilityRule, error)
}

// CatalogServiceClient интерфейс клиента для каталога предметов
type CatalogServiceClient interface {
	GetSubject(ctx context.Context, subjectID int64) (*catalogservice.Subject, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
