package get_available_windows

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	getAvailableWindows "github.com/m04kA/TMS-BookingService/internal/usecase/get_available_windows"
)

// AvailableWindowsResponse HTTP response model
type AvailableWindowsResponse struct {
	TutorID         int64             `json:"tutorId"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"durationMinutes"`
	Windows         []AvailableWindow `json:"windows"`
}

// AvailableWindow модель доступного окна
type AvailableWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RuleID    int64  `json:"ruleId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableWindows.Response) *AvailableWindowsResponse {
	windows := make([]AvailableWindow, len(resp.Windows))
	for i, window := range resp.Windows {
		windows[i] = AvailableWindow{
			StartTime: window.StartTime.String(),
			EndTime:   window.EndTime.String(),
			RuleID:    window.RuleID,
		}
	}

	return &AvailableWindowsResponse{
		TutorID:         resp.TutorID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Windows:         windows,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(tutorID int64, dateStr string, durationMinutes int) (*getAvailableWindows.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableWindows.Request{
		TutorID:         tutorID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}
