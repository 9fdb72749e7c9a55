package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	saveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/save_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRequest тело запроса создания, изменения и проверки бронирования
// Пустые идентификаторы допустимы: их отсутствие сообщает проверка бронирования
type ReservationRequest struct {
	ProjectID    string     `json:"projectId"`
	PrestationID string     `json:"prestationId,omitempty"`
	ConsultantID string     `json:"consultantId"`
	DateDebut    types.Date `json:"dateDebut"`
	DateFin      types.Date `json:"dateFin"`
	ChargePct    float64    `json:"chargePct"`
	Status       string     `json:"status,omitempty"`
	RoleProjet   *string    `json:"roleProjet,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// ToReservation конвертирует запрос в доменную модель
// Пустой статус означает prevue
func (r *ReservationRequest) ToReservation(id uuid.UUID) (*domain.Reservation, error) {
	projectID, err := ParseOptionalUUID(r.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("projectId: %w", err)
	}
	consultantID, err := ParseOptionalUUID(r.ConsultantID)
	if err != nil {
		return nil, fmt.Errorf("consultantId: %w", err)
	}

	var prestationID *uuid.UUID
	if strings.TrimSpace(r.PrestationID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(r.PrestationID))
		if err != nil {
			return nil, fmt.Errorf("prestationId: %w", err)
		}
		prestationID = &parsed
	}

	status := domain.ReservationStatus(strings.TrimSpace(r.Status))
	if status == "" {
		status = domain.StatusPrevue
	}

	return &domain.Reservation{
		ID:           id,
		ProjectID:    projectID,
		PrestationID: prestationID,
		ConsultantID: consultantID,
		DateDebut:    r.DateDebut,
		DateFin:      r.DateFin,
		ChargePct:    r.ChargePct,
		Status:       status,
		RoleProjet:   r.RoleProjet,
		Notes:        r.Notes,
	}, nil
}

// ToSaveRequest конвертирует запрос в модель use case сохранения
// id равен nil при создании. Статус передается как есть: при изменении пустой статус сохраняет текущий
func (r *ReservationRequest) ToSaveRequest(id *uuid.UUID) (*saveReservation.Request, error) {
	reservation, err := r.ToReservation(uuid.Nil)
	if err != nil {
		return nil, err
	}

	return &saveReservation.Request{
		ID:           id,
		ProjectID:    reservation.ProjectID,
		PrestationID: reservation.PrestationID,
		ConsultantID: reservation.ConsultantID,
		DateDebut:    reservation.DateDebut,
		DateFin:      reservation.DateFin,
		ChargePct:    reservation.ChargePct,
		Status:       domain.ReservationStatus(strings.TrimSpace(r.Status)),
		RoleProjet:   reservation.RoleProjet,
		Notes:        reservation.Notes,
	}, nil
}

// ParseOptionalUUID разбирает UUID, пустая строка дает uuid.Nil
func ParseOptionalUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
