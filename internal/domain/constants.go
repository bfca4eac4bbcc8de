package domain

// Default configuration values
const (
	// BookingHorizonDays максимальное количество дней вперед, на которое
	// можно бронировать сессию
	BookingHorizonDays = 30
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не блокирующих временные окна
// Отменённые сессии хранятся для истории, но не участвуют в проверке конфликтов
var InactiveStatuses = []SessionStatus{
	StatusCanceled,
}

// ActiveStatuses список статусов, занимающих свой временной интервал
var ActiveStatuses = []SessionStatus{
	StatusBooked,
	StatusCompleted,
	StatusNoShow,
}
