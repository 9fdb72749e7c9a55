package get_project_reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

type ReservationService interface {
	GetProjectView(ctx context.Context, projectID uuid.UUID, filter reservations.ViewFilter) (*reservations.ProjectView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
