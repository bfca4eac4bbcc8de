package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// monday фиксированный понедельник для тестов
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// fakeSessionRepo in-memory репозиторий сессий
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*domain.Session
	nextID   int64
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *session
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.sessions = append(r.sessions, &created)

	result := created
	return &result, nil
}

func (r *fakeSessionRepo) GetByTutorWithFilter(_ context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Session, 0)
	for _, s := range r.sessions {
		if s.TutorID != filter.TutorID {
			continue
		}
		if !filter.IncludeCanceled && s.Status == domain.StatusCanceled {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

type fakeTutorClient struct {
	tutor    *tutorservice.Tutor
	tutorErr error
	rules    []domain.AvailabilityRule
	rulesErr error
}

func (c *fakeTutorClient) GetTutor(_ context.Context, _ int64) (*tutorservice.Tutor, error) {
	return c.tutor, c.tutorErr
}

func (c *fakeTutorClient) GetAvailabilityRules(_ context.Context, _ int64) ([]domain.AvailabilityRule, error) {
	return c.rules, c.rulesErr
}

type fakeCatalogClient struct {
	subject *catalogservice.Subject
	err     error
}

func (c *fakeCatalogClient) GetSubject(_ context.Context, _ int64) (*catalogservice.Subject, error) {
	return c.subject, c.err
}

// fakeTxManager имитирует сериализуемые транзакции взаимным исключением:
// конкурентные бронирования выполняются строго по очереди
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func rule(id int64, day time.Weekday, start, end types.TimeString) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		ID:        id,
		TutorID:   1,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
}

func defaultTutorClient() *fakeTutorClient {
	return &fakeTutorClient{
		tutor: &tutorservice.Tutor{ID: 1, DisplayName: "Anna", HourlyRate: 25, Currency: "EUR", IsActive: true},
		rules: []domain.AvailabilityRule{rule(7, time.Monday, "09:00", "12:00")},
	}
}

func defaultCatalogClient() *fakeCatalogClient {
	return &fakeCatalogClient{
		subject: &catalogservice.Subject{ID: 3, Name: "Mathematics", TopicIDs: []int64{31, 32}},
	}
}

func newTestUseCase(repo *fakeSessionRepo, tutor *fakeTutorClient, catalog *fakeCatalogClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, tutor, catalog, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		StudentID:       42,
		TutorID:         1,
		SubjectID:       3,
		Date:            monday,
		StartTime:       "09:00",
		DurationMinutes: 90,
	}
}

func TestExecute_Success(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, defaultTutorClient(), defaultCatalogClient(), now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	// 25/час за 90 минут
	assert.Equal(t, 37.50, resp.Price)
	assert.Equal(t, 25.0, resp.HourlyRate)

	require.Len(t, repo.sessions, 1)
	assert.Equal(t, monday.Add(9*time.Hour), repo.sessions[0].StartAt)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), repo.sessions[0].EndAt)
}

func TestExecute_PriceRounding(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	tutor := defaultTutorClient()
	tutor.tutor.HourlyRate = 19.99
	uc := newTestUseCase(&fakeSessionRepo{}, tutor, defaultCatalogClient(), now)

	req := validRequest()
	req.DurationMinutes = 45

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 19.99 * 45 / 60 = 14.9925 -> округляем до 14.99
	assert.Equal(t, 14.99, resp.Price)
}

func TestExecute_SlotUnavailable(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, defaultTutorClient(), defaultCatalogClient(), now)

	// Первое бронирование занимает окно целиком
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторная попытка в то же окно
	_, err = uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotUnavailable)

	assert.Len(t, repo.sessions, 1)
}

func TestExecute_CanceledSessionDoesNotBlock(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, defaultTutorClient(), defaultCatalogClient(), now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отмена освобождает окно
	repo.sessions[0].Status = domain.StatusCanceled

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
}

func TestExecute_StartTimeMustMatchWindowStart(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), defaultCatalogClient(), now)

	// 10:00 лежит внутри правила 09:00-12:00, но окно начинается в 09:00
	req := validRequest()
	req.StartTime = "10:00"

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_DurationDoesNotFit(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), defaultCatalogClient(), now)

	// 240 минут не помещаются в правило 09:00-12:00
	req := validRequest()
	req.DurationMinutes = 240

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SessionCrossingMidnight(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	tutor := defaultTutorClient()
	tutor.rules = []domain.AvailabilityRule{rule(9, time.Monday, "22:00", "23:59")}
	uc := newTestUseCase(&fakeSessionRepo{}, tutor, defaultCatalogClient(), now)

	req := validRequest()
	req.StartTime = "23:00"
	req.DurationMinutes = 120

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_TutorNotFound(t *testing.T) {
	tutor := &fakeTutorClient{tutorErr: tutorservice.ErrTutorNotFound}
	uc := newTestUseCase(&fakeSessionRepo{}, tutor, defaultCatalogClient(), monday.AddDate(0, 0, -3))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTutorNotFound)
}

func TestExecute_SubjectNotFound(t *testing.T) {
	catalog := &fakeCatalogClient{err: catalogservice.ErrSubjectNotFound}
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), catalog, monday.AddDate(0, 0, -3))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestExecute_TopicValidation(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), defaultCatalogClient(), now)

	// Тема из другого предмета
	req := validRequest()
	wrongTopic := int64(99)
	req.TopicID = &wrongTopic

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTopicNotInSubject)

	// Тема из предмета проходит
	okTopic := int64(31)
	req = validRequest()
	req.TopicID = &okTopic

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.TopicID)
	assert.Equal(t, okTopic, *resp.TopicID)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), defaultCatalogClient(), monday)

	// Дата в прошлом
	req := validRequest()
	req.Date = monday.AddDate(0, 0, -7)
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrOutOfRangeDate)

	// Дата за горизонтом бронирования
	req = validRequest()
	req.Date = monday.AddDate(0, 0, domain.BookingHorizonDays+1)
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrOutOfRangeDate)
}

func TestExecute_TooLateToBook(t *testing.T) {
	// Сейчас понедельник 10:30, окно начиналось в 09:00
	now := monday.Add(10*time.Hour + 30*time.Minute)
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), defaultCatalogClient(), now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, defaultTutorClient(), defaultCatalogClient(), monday.AddDate(0, 0, -3))

	req := validRequest()
	req.StudentID = 0
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = "9am"
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.DurationMinutes = 5
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_ConcurrentBookingsSameWindow(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, defaultTutorClient(), defaultCatalogClient(), now)

	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.StudentID = int64(100 + i)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	// Из всех конкурентных попыток успешной должна быть ровно одна
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.sessions, 1)
}
