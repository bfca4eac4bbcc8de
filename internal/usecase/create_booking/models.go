package create_booking

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	StudentID       int64            // ID студента
	TutorID         int64            // ID репетитора
	SubjectID       int64            // ID предмета
	TopicID         *int64           // ID темы внутри предмета (опционально)
	Date            time.Time        // Дата сессии (без времени)
	StartTime       types.TimeString // Время начала окна (например, "10:00")
	DurationMinutes int              // Длительность сессии в минутах
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной сессией и рассчитанной ценой
type Response struct {
	ID              int64            // ID созданной сессии
	TutorID         int64            // ID репетитора
	StudentID       int64            // ID студента
	SubjectID       int64            // ID предмета
	TopicID         *int64           // ID темы
	Date            time.Time        // Дата сессии
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус сессии
	Price           float64          // Стоимость сессии
	HourlyRate      float64          // Почасовая ставка репетитора на момент бронирования
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
