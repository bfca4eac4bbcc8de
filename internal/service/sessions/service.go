package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	sessionRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/session"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

// Service сервис для работы с сессиями
type Service struct {
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// GetByID получает сессию по ID
// Проверяет права доступа - сессию видят только её студент и её репетитор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, userID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !isParticipant(session, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to session id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched session id=%d", id)
	return models.FromDomainSession(session), nil
}

// GetStudentSessions получает историю сессий студента
// Опционально фильтрует по статусу. Доступно только самому студенту
func (s *Service) GetStudentSessions(ctx context.Context, req *models.GetStudentSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetStudentSessions: fetching sessions for student=%d, status=%v", req.StudentID, req.Status)

	// Студент видит только собственную историю
	if req.UserID != req.StudentID {
		s.logger.Warn("GetStudentSessions: access denied for user=%d to student=%d", req.UserID, req.StudentID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.SessionStatus
	var domainStatus *domain.SessionStatus
	if req.Status != nil {
		status, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentSessions: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	sessions, err := s.sessionRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentSessions: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentSessions: successfully fetched %d sessions for student=%d", len(sessions), req.StudentID)
	return models.FromDomainSessionList(sessions), nil
}

// GetTutorSessions получает расписание сессий репетитора с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых сессий
// Доступно только самому репетитору
//
// Примеры использования:
// - Все активные сессии: GetTutorSessions(ctx, &GetTutorSessionsRequest{TutorID: 1, UserID: 1})
// - Сессии на дату: StartDate и EndDate указывают на одну дату
// - Сессии за период: StartDate и EndDate указывают на разные даты
// - Только завершённые: указать Status = "completed"
// - Включая отменённые: IncludeCanceled = true
func (s *Service) GetTutorSessions(ctx context.Context, req *models.GetTutorSessionsRequest) (*models.SessionListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetTutorSessions: fetching sessions for tutor=%d, user=%d", req.TutorID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCanceled {
		logMsg += ", includeCanceled=true"
	}
	s.logger.Info(logMsg)

	// Расписание репетитора видит только он сам
	if req.UserID != req.TutorID {
		s.logger.Warn("GetTutorSessions: access denied for user=%d to tutor=%d", req.UserID, req.TutorID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTutorSessions: invalid filter for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем сессии с фильтрацией
	sessions, err := s.sessionRepo.GetByTutorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTutorSessions: repository error for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: GetTutorSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTutorSessions: successfully fetched %d sessions for tutor=%d", len(sessions), req.TutorID)
	return models.FromDomainSessionList(sessions), nil
}

// Cancel отменяет сессию
// Отменить могут обе стороны - студент или репетитор сессии
// Отмена возможна только для сессий в статусе booked
func (s *Service) Cancel(ctx context.Context, sessionID int64, req *models.CancelSessionRequest) error {
	s.logger.Info("Cancel: cancelling session id=%d by user=%d", sessionID, req.UserID)

	// Получаем сессию
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%d not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !isParticipant(session, req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to cancel session id=%d", req.UserID, sessionID)
		return ErrAccessDenied
	}

	// Проверяем, можно ли отменить сессию
	if !session.CanBeCancelled() {
		s.logger.Warn("Cancel: session id=%d cannot be cancelled, status=%s", sessionID, session.Status)
		return ErrCannotCancel
	}

	// Отменяем сессию - её окно снова становится доступным для бронирования
	if err := s.sessionRepo.Cancel(ctx, sessionID, req.CancellationReason); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%d not found during cancellation", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled session id=%d", sessionID)
	return nil
}

// UpdateStatus обновляет статус сессии по итогам занятия
// Доступно только репетитору сессии, допустимые статусы - completed и no_show
func (s *Service) UpdateStatus(ctx context.Context, sessionID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating session id=%d to status=%s by user=%d",
		sessionID, req.Status, req.UserID)

	// Получаем сессию
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%d not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Итог занятия фиксирует только репетитор
	if session.TutorID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to session id=%d", req.UserID, sessionID)
		return ErrAccessDenied
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainSessionStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for session id=%d", req.Status, sessionID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Через этот метод фиксируются только итоги занятия
	// Отмена идет отдельным маршрутом с указанием причины
	if newStatus != domain.StatusCompleted && newStatus != domain.StatusNoShow {
		s.logger.Warn("UpdateStatus: status=%s is not allowed for session id=%d", req.Status, sessionID)
		return fmt.Errorf("%w: status must be completed or no_show", ErrInvalidStatus)
	}

	// Итог можно выставить только забронированной сессии
	if session.Status != domain.StatusBooked {
		s.logger.Warn("UpdateStatus: session id=%d already in terminal status=%s", sessionID, session.Status)
		return fmt.Errorf("%w: session is not in booked status", ErrInvalidStatus)
	}

	// Обновляем статус
	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, newStatus); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%d not found during update", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated session id=%d to status=%s", sessionID, newStatus)
	return nil
}

// Вспомогательные методы

// isParticipant проверяет, что пользователь является стороной сессии
func isParticipant(session *domain.Session, userID int64) bool {
	return session.StudentID == userID || session.TutorID == userID
}
