package catalogservice

import "errors"

var (
	// ErrSubjectNotFound возвращается, когда предмет не найден в каталоге
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
