package calendar

import "errors"

var (
	// ErrInternal возвращается при ошибке чтения календаря консультанта
	ErrInternal = errors.New("calendar.service: internal error")
)
