package save_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда изменяемое бронирование не найдено
	ErrReservationNotFound = errors.New("save_reservation: reservation not found")

	// ErrInvalidTransition возвращается при попытке вывести бронирование из конечного статуса
	ErrInvalidTransition = errors.New("save_reservation: reservation status is final")

	// ErrConfirmationRequired возвращается, когда изменение переводит бронирование в конечный статус
	// Такой переход выполняется только подтвержденной сменой статуса
	ErrConfirmationRequired = errors.New("save_reservation: confirmation required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_reservation: internal error")
)
