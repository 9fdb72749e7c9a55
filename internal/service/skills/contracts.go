package skills

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CompetencyRepository интерфейс репозитория компетенций консультантов
type CompetencyRepository interface {
	ListByConsultant(ctx context.Context, consultantID uuid.UUID, competenceIDs []uuid.UUID) ([]domain.ConsultantCompetency, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
