package change_reservation_status

import "errors"

var (
	// ErrInvalidStatus возвращается для неизвестного статуса
	ErrInvalidStatus = errors.New("change_reservation_status: invalid status")

	// ErrConfirmationRequired возвращается, если необратимый переход не подтвержден
	ErrConfirmationRequired = errors.New("change_reservation_status: confirmation required")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("change_reservation_status: reservation not found")

	// ErrInvalidTransition возвращается при попытке вывести бронирование из конечного статуса
	ErrInvalidTransition = errors.New("change_reservation_status: reservation status is final")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_reservation_status: internal error")
)
