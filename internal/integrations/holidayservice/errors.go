package holidayservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("holidayservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от фида
	ErrInvalidResponse = errors.New("holidayservice client: invalid response")
)
