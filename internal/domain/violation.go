package domain

import (
	"errors"
	"fmt"
)

// Виды блокирующих нарушений
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingCompetency  = errors.New("missing mandatory competency")
	ErrInsufficientLevel  = errors.New("insufficient competency level")
	ErrOverlap            = errors.New("overlapping reservation")
	ErrBlockedPeriod      = errors.New("blocked period")
	ErrOverAllocation     = errors.New("over allocation")
	ErrConsultantNotFound = errors.New("consultant not found")
)

// Violation блокирующее нарушение правил бронирования
// Message показывается пользователю как есть, Kind доступен через errors.Is
type Violation struct {
	Kind    error
	Message string
}

// NewViolation создает нарушение с форматированным сообщением
func NewViolation(kind error, format string, args ...interface{}) *Violation {
	return &Violation{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (v *Violation) Error() string {
	return v.Message
}

func (v *Violation) Unwrap() error {
	return v.Kind
}

// IsStructural нарушение обнаружено без обращения к хранилищу
func (v *Violation) IsStructural() bool {
	return errors.Is(v.Kind, ErrInvalidInput)
}

// AsViolation извлекает нарушение из цепочки ошибок
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
