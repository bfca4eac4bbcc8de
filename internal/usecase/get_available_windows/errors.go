package get_available_windows

import "errors"

var (
	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("tutor not found")

	// ErrOutOfRangeDate возвращается, когда дата в прошлом или за пределами
	// горизонта бронирования
	ErrOutOfRangeDate = errors.New("date is out of booking range")

	// ErrInvalidDuration возвращается при некорректной длительности сессии
	ErrInvalidDuration = errors.New("invalid session duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDataIntegrity возвращается, когда в ledger найдена сессия с
	// некорректным интервалом. Такие данные не чинятся молча
	ErrDataIntegrity = errors.New("session ledger integrity violation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
