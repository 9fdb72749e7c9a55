package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ProjectServiceClient интерфейс клиента для ProjectService
type ProjectServiceClient interface {
	ListServiceLines(ctx context.Context, projectID uuid.UUID) ([]*domain.ServiceLine, error)
}

// CapabilityRegistry состояние возможностей схемы
type CapabilityRegistry interface {
	LinkageEnabled(ctx context.Context) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
