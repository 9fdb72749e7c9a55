package domain

import "github.com/google/uuid"

// ConsultantStatus статус консультанта
type ConsultantStatus string

const (
	ConsultantActif      ConsultantStatus = "actif"
	ConsultantDisponible ConsultantStatus = "disponible"
	ConsultantEnMission  ConsultantStatus = "en_mission"
	ConsultantInactif    ConsultantStatus = "inactif"
)

// Consultant консультант, которого можно бронировать
type Consultant struct {
	ID     uuid.UUID
	Nom    string
	Prenom string
	Status ConsultantStatus
}

// FullName имя для сообщений
func (c *Consultant) FullName() string {
	switch {
	case c.Prenom == "":
		return c.Nom
	case c.Nom == "":
		return c.Prenom
	default:
		return c.Prenom + " " + c.Nom
	}
}

// IsInactive возвращает true для выведенного из работы консультанта
func (c *Consultant) IsInactive() bool {
	return c.Status == ConsultantInactif
}

// ConsultantCompetency уровень владения компетенцией
type ConsultantCompetency struct {
	ConsultantID   uuid.UUID
	CompetenceID   uuid.UUID
	NiveauMaitrise string
}
