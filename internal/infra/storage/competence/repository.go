package competence

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий компетенций консультантов (consultant_competences)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByConsultant возвращает уровни консультанта по указанным компетенциям
// Пустой список competenceIDs означает все компетенции консультанта
func (r *Repository) ListByConsultant(ctx context.Context, consultantID uuid.UUID, competenceIDs []uuid.UUID) ([]domain.ConsultantCompetency, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("consultant_id", "competence_id", "niveau_maitrise").
		From("consultant_competences").
		Where(squirrel.Eq{"consultant_id": consultantID})
	if len(competenceIDs) > 0 {
		ids := make([]string, 0, len(competenceIDs))
		for _, id := range competenceIDs {
			ids = append(ids, id.String())
		}
		builder = builder.Where(squirrel.Eq{"competence_id": ids})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByConsultant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByConsultant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	competencies := make([]domain.ConsultantCompetency, 0)
	for rows.Next() {
		var c domain.ConsultantCompetency
		if err := rows.Scan(&c.ConsultantID, &c.CompetenceID, &c.NiveauMaitrise); err != nil {
			return nil, fmt.Errorf("%w: ListByConsultant - scan competency: %v", ErrScanRow, err)
		}
		competencies = append(competencies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByConsultant - rows error: %v", ErrScanRow, err)
	}

	return competencies, nil
}
