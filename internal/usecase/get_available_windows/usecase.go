package get_available_windows

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	tutorClient "github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
)

// UseCase use case для получения доступных окон бронирования
type UseCase struct {
	sessionRepo  SessionRepository
	tutorClient  TutorServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	tutorClient TutorServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		tutorClient:  tutorClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных окон
// Вычисление чистое и не имеет побочных эффектов: повторный вызов без
// изменений в ledger возвращает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableWindows: tutor=%d, date=%s, duration=%d",
		req.TutorID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableWindows: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты относительно горизонта бронирования
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableWindows: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование репетитора
	if _, err := uc.tutorClient.GetTutor(ctx, req.TutorID); err != nil {
		if errors.Is(err, tutorClient.ErrTutorNotFound) {
			uc.logger.Warn("GetAvailableWindows: tutor id=%d not found", req.TutorID)
			return nil, ErrTutorNotFound
		}
		uc.logger.Error("GetAvailableWindows: failed to get tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get tutor: %v", ErrInternal, err)
	}

	// 5. Получаем правила доступности репетитора
	rules, err := uc.tutorClient.GetAvailabilityRules(ctx, req.TutorID)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to get availability rules for tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	// 6. Получаем сессии репетитора на эту дату
	// Отменённые сессии исключаются фильтром - они не блокируют окна
	filter := domain.TutorSessionsFilter{
		TutorID:         req.TutorID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeCanceled: false,
	}

	sessions, err := uc.sessionRepo.GetByTutorWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступные окна
	windows, err := resolveWindows(rules, sessions, req.Date, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to resolve windows: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableWindows: resolved %d windows for tutor=%d, date=%s",
		len(windows), req.TutorID, req.Date.Format(domain.DateFormat))

	result := make([]Window, len(windows))
	for i, w := range windows {
		result[i] = Window{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			RuleID:    w.RuleID,
		}
	}

	return &Response{
		TutorID:         req.TutorID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Windows:         result,
	}, nil
}
