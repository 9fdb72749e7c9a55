package domain

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BlockedPeriodType тип периода недоступности консультанта
type BlockedPeriodType string

const (
	PeriodConges     BlockedPeriodType = "conges"
	PeriodFormation  BlockedPeriodType = "formation"
	PeriodPreference BlockedPeriodType = "preference"
)

// BlockedPeriod период, которого следует избегать при бронировании
// (таблица consultants_periodes_eviter)
type BlockedPeriod struct {
	ID           uuid.UUID
	ConsultantID uuid.UUID
	DateDebut    types.Date
	DateFin      types.Date
	Type         BlockedPeriodType
	Motif        *string
}

// IsBlocking отпуск и обучение запрещают бронирование
func (p *BlockedPeriod) IsBlocking() bool {
	return p.Type == PeriodConges || p.Type == PeriodFormation
}

// IsAdvisory пожелание консультанта дает только предупреждение
func (p *BlockedPeriod) IsAdvisory() bool {
	return p.Type == PeriodPreference
}

// Overlaps проверяет пересечение с периодом [from, to] включительно
func (p *BlockedPeriod) Overlaps(from, to types.Date) bool {
	return !p.DateDebut.IsAfter(to) && !p.DateFin.IsBefore(from)
}
