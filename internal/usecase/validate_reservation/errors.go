package validate_reservation

import (
	"errors"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BlockingError блокирующее нарушение: бронирование не сохраняется
type BlockingError = domain.Violation

// Виды блокирующих нарушений (для errors.Is)
var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrMissingCompetency  = domain.ErrMissingCompetency
	ErrInsufficientLevel  = domain.ErrInsufficientLevel
	ErrOverlap            = domain.ErrOverlap
	ErrBlockedPeriod      = domain.ErrBlockedPeriod
	ErrOverAllocation     = domain.ErrOverAllocation
	ErrConsultantNotFound = domain.ErrConsultantNotFound
)

var (
	// ErrInternal возвращается, когда проверку нельзя выполнить из-за ошибки инфраструктуры
	ErrInternal = errors.New("validate_reservation: internal error")
)

// Метки метрики reservation_validation_total
const (
	OutcomeAccepted             = "accepted"
	OutcomeAcceptedWithWarnings = "accepted_with_warnings"
	OutcomeRejected             = "rejected"
	OutcomeError                = "error"
)

var kindLabels = []struct {
	kind  error
	label string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrMissingCompetency, "missing_competency"},
	{ErrInsufficientLevel, "insufficient_level"},
	{ErrOverlap, "overlap"},
	{ErrBlockedPeriod, "blocked_period"},
	{ErrOverAllocation, "over_allocation"},
	{ErrConsultantNotFound, "consultant_not_found"},
}

// KindLabel метка вида нарушения для метрик
func KindLabel(err error) string {
	if err == nil {
		return "none"
	}
	for _, k := range kindLabels {
		if errors.Is(err, k.kind) {
			return k.label
		}
	}
	return "other"
}
