package projectservice

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceLine строка заказа (prestation) в ответе ProjectService
type ServiceLine struct {
	ID           uuid.UUID               `json:"id"`
	CommandeID   uuid.UUID               `json:"commande_id"`
	ProjectID    uuid.UUID               `json:"projet_id"`
	Libelle      string                  `json:"libelle"`
	TypeCode     string                  `json:"type_code"`
	Quantite     float64                 `json:"quantite"`
	PrixUnitaire *decimal.Decimal        `json:"prix_unitaire,omitempty"`
	Competences  []CompetencyRequirement `json:"competences"`
}

// CompetencyRequirement требование к компетенции строки заказа
type CompetencyRequirement struct {
	CompetenceID  uuid.UUID `json:"competence_id"`
	CompetenceNom string    `json:"competence_nom"`
	NiveauRequis  string    `json:"niveau_requis"`
	Obligatoire   bool      `json:"obligatoire"`
}

// ErrorResponse модель ошибки от ProjectService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain преобразует ответ в доменную модель
func (s *ServiceLine) ToDomain() *domain.ServiceLine {
	requirements := make([]domain.CompetencyRequirement, 0, len(s.Competences))
	for _, c := range s.Competences {
		requirements = append(requirements, domain.CompetencyRequirement{
			CompetenceID:  c.CompetenceID,
			CompetenceNom: c.CompetenceNom,
			NiveauRequis:  c.NiveauRequis,
			Obligatoire:   c.Obligatoire,
		})
	}

	return &domain.ServiceLine{
		ID:           s.ID,
		CommandeID:   s.CommandeID,
		ProjectID:    s.ProjectID,
		Libelle:      s.Libelle,
		TypeCode:     s.TypeCode,
		Quantity:     s.Quantite,
		UnitPrice:    s.PrixUnitaire,
		Requirements: requirements,
	}
}
