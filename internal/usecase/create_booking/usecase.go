package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	catalogClient "github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	tutorClient "github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	sessionRepo   SessionRepository
	tutorClient   TutorServiceClient
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	tutorClient TutorServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		tutorClient:   tutorClient,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности окна и вставка сессии выполняются в сериализуемой
// транзакции с блокировкой сессий репетитора на дату (FOR UPDATE) - из двух
// конкурентных бронирований пересекающихся окон успешным будет только одно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, tutor=%d, subject=%d, date=%s, time=%s, duration=%d",
		req.StudentID, req.TutorID, req.SubjectID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем репетитора (источник почасовой ставки)
	tutor, err := uc.tutorClient.GetTutor(ctx, req.TutorID)
	if err != nil {
		if errors.Is(err, tutorClient.ErrTutorNotFound) {
			uc.logger.Warn("CreateBooking: tutor id=%d not found", req.TutorID)
			return nil, ErrTutorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get tutor: %v", ErrInternal, err)
	}

	// 4. Проверяем предмет по каталогу
	subject, err := uc.catalogClient.GetSubject(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSubjectNotFound) {
			uc.logger.Warn("CreateBooking: subject id=%d not found", req.SubjectID)
			return nil, ErrSubjectNotFound
		}
		uc.logger.Error("CreateBooking: failed to get subject id=%d: %v", req.SubjectID, err)
		return nil, fmt.Errorf("%w: failed to get subject: %v", ErrInternal, err)
	}

	// 5. Проверяем, что тема принадлежит предмету
	if err := validateTopic(subject, req.TopicID); err != nil {
		uc.logger.Warn("CreateBooking: topic id=%v does not belong to subject id=%d", req.TopicID, req.SubjectID)
		return nil, err
	}

	// 6. Получаем правила доступности репетитора
	rules, err := uc.tutorClient.GetAvailabilityRules(ctx, req.TutorID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get availability rules for tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Session

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Валидация даты с учетом горизонта бронирования
		if err := validateDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 7.2. Для сегодняшней даты окно не должно быть в прошлом
		if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 7.3. Получаем сессии репетитора на эту дату с блокировкой (FOR UPDATE)
		filter := domain.TutorSessionsFilter{
			TutorID:         req.TutorID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeCanceled: false,
		}

		sessions, err := uc.sessionRepo.GetByTutorWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
		}

		// 7.4. Пересчитываем доступные окна по актуальному состоянию ledger
		windows, err := resolveWindows(rules, sessions, req.Date, req.DurationMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve windows: %v", err)
			return err
		}

		// 7.5. Запрошенное время начала должно совпадать с началом одного из окон
		// Сюда же попадает гонка: окно показали, но его успели занять
		window := findWindow(windows, req.StartTime)
		if window == nil {
			uc.logger.Warn("CreateBooking: slot %s not available for tutor=%d on %s",
				req.StartTime, req.TutorID, req.Date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 7.6. Создаем сессию с рассчитанной ценой
		session := &domain.Session{
			TutorID:   req.TutorID,
			StudentID: req.StudentID,
			SubjectID: req.SubjectID,
			TopicID:   req.TopicID,
			StartAt:   window.StartAt(),
			EndAt:     window.EndAt(),
			Status:    domain.StatusBooked,
			Price:     domain.SessionPrice(tutor.HourlyRate, req.DurationMinutes),
			Notes:     req.Notes,
		}

		// 7.7. Сохраняем сессию
		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created session id=%d, price=%.2f", result.ID, result.Price)

	// Конвертируем в response
	endTime, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		// Невозможно: validateRequest уже проверил выход за полночь
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		TutorID:         result.TutorID,
		StudentID:       result.StudentID,
		SubjectID:       result.SubjectID,
		TopicID:         result.TopicID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		DurationMinutes: req.DurationMinutes,
		Status:          string(result.Status),
		Price:           result.Price,
		HourlyRate:      tutor.HourlyRate,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
