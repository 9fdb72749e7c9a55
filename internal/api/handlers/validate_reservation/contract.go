package validate_reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	validateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

type ValidateReservationUseCase interface {
	Validate(ctx context.Context, candidate *domain.Reservation) (*validateReservation.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
