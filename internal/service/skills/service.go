package skills

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Service сопоставляет требования строки заказа с компетенциями консультанта
type Service struct {
	competencies CompetencyRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(competencies CompetencyRepository, logger Logger) *Service {
	return &Service{
		competencies: competencies,
		logger:       logger,
	}
}

// Check проверяет требования по порядку
//
// Первое нарушение обязательного требования возвращается как *domain.Violation,
// остальные требования уже не проверяются. Пробелы по необязательным требованиям
// накапливаются в предупреждениях.
func (s *Service) Check(ctx context.Context, consultantID uuid.UUID, requirements []domain.CompetencyRequirement) ([]string, error) {
	warnings := make([]string, 0)
	if len(requirements) == 0 {
		return warnings, nil
	}

	ids := make([]uuid.UUID, 0, len(requirements))
	for _, req := range requirements {
		ids = append(ids, req.CompetenceID)
	}

	records, err := s.competencies.ListByConsultant(ctx, consultantID, ids)
	if err != nil {
		s.logger.Error("Check: failed to load competencies for consultant=%s: %v", consultantID, err)
		return nil, fmt.Errorf("%w: Check - list competencies: %v", ErrInternal, err)
	}

	levels := make(map[uuid.UUID]string, len(records))
	for _, r := range records {
		levels[r.CompetenceID] = r.NiveauMaitrise
	}

	for _, req := range requirements {
		name := competenceName(req)

		level, ok := levels[req.CompetenceID]
		if !ok {
			if req.Obligatoire {
				return nil, domain.NewViolation(domain.ErrMissingCompetency,
					"Compétence obligatoire manquante : %s", name)
			}
			warnings = append(warnings, fmt.Sprintf("Compétence souhaitée absente : %s", name))
			continue
		}

		if domain.LevelRank(level) >= domain.LevelRank(req.NiveauRequis) {
			continue
		}

		if req.Obligatoire {
			return nil, domain.NewViolation(domain.ErrInsufficientLevel,
				"Niveau insuffisant en %s : requis « %s », consultant « %s »",
				name, displayLevel(req.NiveauRequis), displayLevel(level))
		}
		warnings = append(warnings, fmt.Sprintf("Niveau inférieur au souhaité en %s : requis « %s », consultant « %s »",
			name, displayLevel(req.NiveauRequis), displayLevel(level)))
	}

	return warnings, nil
}

func competenceName(req domain.CompetencyRequirement) string {
	if req.CompetenceNom != "" {
		return req.CompetenceNom
	}
	return req.CompetenceID.String()
}

func displayLevel(label string) string {
	if label == "" {
		return "non renseigné"
	}
	return label
}
