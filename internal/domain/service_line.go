package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CompetencyRequirement компетенция, требуемая строкой заказа
type CompetencyRequirement struct {
	CompetenceID  uuid.UUID
	CompetenceNom string
	NiveauRequis  string
	Obligatoire   bool
}

// ServiceLine проданная строка заказа (prestation), на которую бронируются консультанты
// Только для чтения: создается при преобразовании заказа в проект
type ServiceLine struct {
	ID           uuid.UUID
	CommandeID   uuid.UUID
	ProjectID    uuid.UUID
	Libelle      string
	TypeCode     string
	Quantity     float64 // продано единиц (обычно человеко-дней)
	UnitPrice    *decimal.Decimal
	Requirements []CompetencyRequirement
}

// PlanningStatus состояние планирования строки заказа
type PlanningStatus string

const (
	PlanningNone     PlanningStatus = "Non planifié"
	PlanningPartial  PlanningStatus = "Partiellement planifié"
	PlanningComplete PlanningStatus = "Entièrement planifié"
	PlanningDone     PlanningStatus = "Réalisé"
)

// ServiceLineStats производная статистика строки заказа, не хранится
type ServiceLineStats struct {
	PrestationID  uuid.UUID
	Libelle       string
	Quantity      float64
	Planned       float64 // единицы всех неотмененных бронирований
	Done          float64 // единицы бронирований в статусе terminee
	Remaining     float64
	Sessions      int
	FirstDate     *types.Date
	LastDate      *types.Date
	Status        PlanningStatus
	PlannedAmount *decimal.Decimal
	DoneAmount    *decimal.Decimal
}

// ComputeServiceLineStats пересчитывает статистику строки по бронированиям
// Бронирования других строк и отмененные игнорируются
func ComputeServiceLineStats(line *ServiceLine, reservations []*Reservation) ServiceLineStats {
	stats := ServiceLineStats{
		PrestationID: line.ID,
		Libelle:      line.Libelle,
		Quantity:     line.Quantity,
	}

	for _, r := range reservations {
		if !r.LinkedTo(line.ID) || r.IsCancelled() {
			continue
		}

		units := r.Units()
		stats.Planned += units
		if r.IsDone() {
			stats.Done += units
		}
		stats.Sessions++

		if stats.FirstDate == nil || r.DateDebut.IsBefore(*stats.FirstDate) {
			d := r.DateDebut
			stats.FirstDate = &d
		}
		if stats.LastDate == nil || r.DateFin.IsAfter(*stats.LastDate) {
			d := r.DateFin
			stats.LastDate = &d
		}
	}

	stats.Remaining = RemainingUnits(line.Quantity, stats.Planned)
	stats.Status = planningStatus(line.Quantity, stats.Planned, stats.Done)

	if line.UnitPrice != nil {
		planned := line.UnitPrice.Mul(decimal.NewFromFloat(stats.Planned)).Round(2)
		done := line.UnitPrice.Mul(decimal.NewFromFloat(stats.Done)).Round(2)
		stats.PlannedAmount = &planned
		stats.DoneAmount = &done
	}

	return stats
}

// RemainingUnits остаток к планированию, не меньше нуля
func RemainingUnits(quantity, planned float64) float64 {
	remaining := quantity - planned
	if remaining < 0 {
		return 0
	}
	return remaining
}

func planningStatus(quantity, planned, done float64) PlanningStatus {
	switch {
	case planned <= DefaultEpsilon:
		return PlanningNone
	case done > DefaultEpsilon && done >= quantity-DefaultEpsilon:
		return PlanningDone
	case planned >= quantity-DefaultEpsilon:
		return PlanningComplete
	default:
		return PlanningPartial
	}
}
