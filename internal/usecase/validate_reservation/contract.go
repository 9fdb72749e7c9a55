package validate_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ConsultantRepository интерфейс репозитория консультантов
type ConsultantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Consultant, error)
}

// ProjectServiceClient интерфейс клиента для ProjectService
type ProjectServiceClient interface {
	GetServiceLine(ctx context.Context, id uuid.UUID) (*domain.ServiceLine, error)
}

// CapabilityRegistry состояние возможностей схемы
type CapabilityRegistry interface {
	LinkageEnabled(ctx context.Context) bool
}

// SkillsChecker проверка компетенций консультанта
type SkillsChecker interface {
	Check(ctx context.Context, consultantID uuid.UUID, requirements []domain.CompetencyRequirement) ([]string, error)
}

// CalendarChecker проверка календаря консультанта
type CalendarChecker interface {
	CheckOverlap(ctx context.Context, consultantID uuid.UUID, from, to types.Date, excludeID *uuid.UUID) error
	CheckBlockedPeriods(ctx context.Context, consultantID uuid.UUID, from, to types.Date) ([]string, error)
}

// QuantityChecker сверка с проданным количеством
type QuantityChecker interface {
	Check(line *domain.ServiceLine, reservations []*domain.Reservation, proposed *domain.Reservation) error
}

// MetricsRecorder учет результатов проверки
type MetricsRecorder interface {
	ObserveValidation(outcome, kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
