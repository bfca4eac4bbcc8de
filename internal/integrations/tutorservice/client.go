package tutorservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TutorProfileService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TutorProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTutor получает профиль репетитора (включая почасовую ставку)
func (c *Client) GetTutor(ctx context.Context, tutorID int64) (*Tutor, error) {
	url := fmt.Sprintf("%s/internal/tutors/%d", c.baseURL, tutorID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var tutor Tutor
	if err := json.NewDecoder(body).Decode(&tutor); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tutor: %v", ErrInvalidResponse, err)
	}

	return &tutor, nil
}

// GetAvailabilityRules получает недельное расписание доступности репетитора
// Возвращает все правила, включая неактивные - фильтрация по is_active
// происходит при вычислении окон
func (c *Client) GetAvailabilityRules(ctx context.Context, tutorID int64) ([]domain.AvailabilityRule, error) {
	url := fmt.Sprintf("%s/internal/tutors/%d/availability-rules", c.baseURL, tutorID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var raw []AvailabilityRule
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode availability rules: %v", ErrInvalidResponse, err)
	}

	rules := make([]domain.AvailabilityRule, 0, len(raw))
	for _, r := range raw {
		rule, err := r.ToDomain()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusBadRequest:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: invalid tutor ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrTutorNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
