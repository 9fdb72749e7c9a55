package projectservice

import "errors"

var (
	// ErrServiceLineNotFound возвращается, когда строка заказа не найдена
	ErrServiceLineNotFound = errors.New("projectservice client: service line not found")

	// ErrProjectNotFound возвращается, когда проект не найден
	ErrProjectNotFound = errors.New("projectservice client: project not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("projectservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("projectservice client: invalid response")
)
