package update_reservation

import (
	"context"

	saveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/save_reservation"
)

type SaveReservationUseCase interface {
	Execute(ctx context.Context, req *saveReservation.Request) (*saveReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
