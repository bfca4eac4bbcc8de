package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-BookingService/pkg/psqlbuilder"
)

var sessionColumns = []string{
	"id",
	"tutor_id",
	"student_id",
	"subject_id",
	"topic_id",
	"start_at",
	"end_at",
	"status",
	"price",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями (session ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую сессию
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание сессии с проверкой доступности окна обязано выполняться в транзакции,
// чтобы исключить двойное бронирование одного и того же интервала.
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"tutor_id",
			"student_id",
			"subject_id",
			"topic_id",
			"start_at",
			"end_at",
			"status",
			"price",
			"notes",
		).
		Values(
			s.TutorID,
			s.StudentID,
			s.SubjectID,
			s.TopicID,
			s.StartAt,
			s.EndAt,
			s.Status,
			s.Price,
			s.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TutorID,
		&s.StudentID,
		&s.SubjectID,
		&s.TopicID,
		&s.StartAt,
		&s.EndAt,
		&s.Status,
		&s.Price,
		&s.Notes,
		&s.CancellationReason,
		&s.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetByStudentID получает список сессий студента
// Опционально фильтрует по статусу
func (r *Repository) GetByStudentID(ctx context.Context, studentID int64, status *domain.SessionStatus) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("start_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetByTutorWithFilter получает сессии репетитора с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (StartDate, EndDate) - календарные даты, границы включительно
// - Статусу (Status) - опционально
// - Включению отменённых сессий (IncludeCanceled)
//
// Внутри транзакции запрос на конкретную дату блокирует строки (FOR UPDATE) -
// так create_booking сериализует проверку занятости окна с последующей вставкой
// по одному и тому же репетитору
func (r *Repository) GetByTutorWithFilter(ctx context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"tutor_id": filter.TutorID})

	// Фильтрация по периоду: сессия попадает в период по дате начала
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": dayStart(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": dayStart(*filter.EndDate).AddDate(0, 0, 1)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCanceled {
		// Если не указан конкретный статус и отменённые не нужны - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_at DESC")
	}

	// Если используется транзакция, добавляем FOR UPDATE для блокировки
	// (только для конкретной даты - для usecase создания бронирования)
	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTutorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTutorWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// UpdateStatus обновляет статус сессии
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Cancel отменяет сессию с сохранением причины отмены
// Сессия не удаляется физически - остаётся в ledger для истории
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		var s domain.Session
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.TutorID,
			&s.StudentID,
			&s.SubjectID,
			&s.TopicID,
			&s.StartAt,
			&s.EndAt,
			&s.Status,
			&s.Price,
			&s.Notes,
			&s.CancellationReason,
			&s.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// dayStart обнуляет время, оставляя только календарную дату
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
