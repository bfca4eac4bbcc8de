package tutorservice

import "errors"

var (
	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("tutor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tutorservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tutorservice client: invalid response")
)
