package save_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
}

// Validator двухфазная проверка бронирования
type Validator interface {
	Validate(ctx context.Context, candidate *domain.Reservation) (*validate_reservation.Result, error)
}

// ProjectViewLoader перезагрузка бронирований проекта после записи
type ProjectViewLoader interface {
	GetProjectView(ctx context.Context, projectID uuid.UUID, filter reservations.ViewFilter) (*reservations.ProjectView, error)
}

// CapabilityRegistry состояние привязки бронирований к строкам заказа
type CapabilityRegistry interface {
	ServiceLineLinkage(ctx context.Context) domain.Capability
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
