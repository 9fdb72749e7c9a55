package save_reservation

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание или изменение бронирования
type Request struct {
	ID           *uuid.UUID // nil при создании
	ProjectID    uuid.UUID
	PrestationID *uuid.UUID // игнорируется, если хранилище не поддерживает привязку
	ConsultantID uuid.UUID
	DateDebut    types.Date
	DateFin      types.Date
	ChargePct    float64
	Status       domain.ReservationStatus // пустой: prevue при создании, текущий при изменении
	RoleProjet   *string
	Notes        *string
}

// Response модель ответа с сохраненным бронированием
type Response struct {
	Reservation *domain.Reservation
	Warnings    []string
	Project     *reservations.ProjectView // nil, если перезагрузка не удалась
}

func (r *Request) toDomain() *domain.Reservation {
	reservation := &domain.Reservation{
		ProjectID:    r.ProjectID,
		PrestationID: r.PrestationID,
		ConsultantID: r.ConsultantID,
		DateDebut:    r.DateDebut,
		DateFin:      r.DateFin,
		ChargePct:    r.ChargePct,
		Status:       r.Status,
		RoleProjet:   r.RoleProjet,
		Notes:        r.Notes,
	}
	if r.ID != nil {
		reservation.ID = *r.ID
	}
	if r.ID == nil && reservation.Status == "" {
		reservation.Status = domain.StatusPrevue
	}
	return reservation
}
