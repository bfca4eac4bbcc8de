package create_booking

import "errors"

var (
	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("create_booking: tutor not found")

	// ErrSubjectNotFound возвращается, когда предмет отсутствует в каталоге
	ErrSubjectNotFound = errors.New("create_booking: subject not found")

	// ErrTopicNotInSubject возвращается, когда тема не принадлежит выбранному предмету
	ErrTopicNotInSubject = errors.New("create_booking: topic does not belong to subject")

	// ErrOutOfRangeDate возвращается, когда дата в прошлом или за пределами
	// горизонта бронирования
	ErrOutOfRangeDate = errors.New("create_booking: date is out of booking range")

	// ErrInvalidDuration возвращается при некорректной длительности,
	// в том числе когда сессия пересекала бы полночь
	ErrInvalidDuration = errors.New("create_booking: invalid session duration")

	// ErrSlotUnavailable возвращается, когда запрошенное окно недоступно:
	// его не существует, оно не вмещает длительность или его успели занять
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается при попытке забронировать сегодняшнее
	// окно, начало которого уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDataIntegrity возвращается при обнаружении сессии с некорректным
	// интервалом в ledger
	ErrDataIntegrity = errors.New("create_booking: session ledger integrity violation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
