package get_available_windows

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных окон
type Request struct {
	TutorID         int64     // ID репетитора
	Date            time.Time // Дата, на которую запрашиваются окна (без времени)
	DurationMinutes int       // Желаемая длительность сессии в минутах
}

// Response модель ответа со списком доступных окон
type Response struct {
	TutorID         int64     // ID репетитора
	Date            time.Time // Дата, на которую запрашивались окна
	DurationMinutes int       // Запрошенная длительность
	Windows         []Window  // Список доступных окон
}

// Window модель доступного для бронирования окна
type Window struct {
	StartTime types.TimeString // Время начала, которое может забронировать студент
	EndTime   types.TimeString // Время конца = начало + длительность
	RuleID    int64            // ID правила доступности, породившего окно
}
