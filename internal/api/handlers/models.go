package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	saveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/save_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationResponse HTTP модель бронирования
type ReservationResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"projectId"`
	PrestationID *uuid.UUID `json:"prestationId,omitempty"`
	ConsultantID uuid.UUID  `json:"consultantId"`
	DateDebut    types.Date `json:"dateDebut"`
	DateFin      types.Date `json:"dateFin"`
	ChargePct    float64    `json:"chargePct"`
	Units        float64    `json:"units"`
	Status       string     `json:"status"`
	RoleProjet   *string    `json:"roleProjet,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// ServiceLineStatsResponse HTTP модель статистики строки заказа
type ServiceLineStatsResponse struct {
	PrestationID  uuid.UUID        `json:"prestationId"`
	Libelle       string           `json:"libelle"`
	Quantity      float64          `json:"quantity"`
	Planned       float64          `json:"planned"`
	Done          float64          `json:"done"`
	Remaining     float64          `json:"remaining"`
	Sessions      int              `json:"sessions"`
	FirstDate     *types.Date      `json:"firstDate,omitempty"`
	LastDate      *types.Date      `json:"lastDate,omitempty"`
	Status        string           `json:"status"`
	PlannedAmount *decimal.Decimal `json:"plannedAmount,omitempty"`
	DoneAmount    *decimal.Decimal `json:"doneAmount,omitempty"`
}

// ProjectViewResponse HTTP модель бронирований проекта
type ProjectViewResponse struct {
	ProjectID    uuid.UUID                  `json:"projectId"`
	Linkage      bool                       `json:"linkage"`
	Reservations []ReservationResponse      `json:"reservations"`
	ServiceLines []ServiceLineStatsResponse `json:"serviceLines"`
}

// FromReservation конвертирует доменную модель в HTTP ответ
func FromReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		PrestationID: r.PrestationID,
		ConsultantID: r.ConsultantID,
		DateDebut:    r.DateDebut,
		DateFin:      r.DateFin,
		ChargePct:    r.ChargePct,
		Units:        r.Units(),
		Status:       string(r.Status),
		RoleProjet:   r.RoleProjet,
		Notes:        r.Notes,
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
}

// FromProjectView конвертирует представление проекта в HTTP ответ
// nil остается nil: клиент перечитает проект отдельным запросом
func FromProjectView(view *reservations.ProjectView) *ProjectViewResponse {
	if view == nil {
		return nil
	}

	resp := &ProjectViewResponse{
		ProjectID:    view.ProjectID,
		Linkage:      view.Linkage,
		Reservations: make([]ReservationResponse, 0, len(view.Reservations)),
		ServiceLines: make([]ServiceLineStatsResponse, 0, len(view.ServiceLines)),
	}
	for _, r := range view.Reservations {
		resp.Reservations = append(resp.Reservations, FromReservation(r))
	}
	for _, s := range view.ServiceLines {
		resp.ServiceLines = append(resp.ServiceLines, ServiceLineStatsResponse{
			PrestationID:  s.PrestationID,
			Libelle:       s.Libelle,
			Quantity:      s.Quantity,
			Planned:       s.Planned,
			Done:          s.Done,
			Remaining:     s.Remaining,
			Sessions:      s.Sessions,
			FirstDate:     s.FirstDate,
			LastDate:      s.LastDate,
			Status:        string(s.Status),
			PlannedAmount: s.PlannedAmount,
			DoneAmount:    s.DoneAmount,
		})
	}

	return resp
}

// Warnings гарантирует массив в JSON вместо null
func Warnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// SaveReservationResponse HTTP ответ с сохраненным бронированием
type SaveReservationResponse struct {
	Reservation ReservationResponse  `json:"reservation"`
	Warnings    []string             `json:"warnings"`
	Project     *ProjectViewResponse `json:"project,omitempty"`
}

// FromSaveResponse конвертирует ответ use case сохранения в HTTP response
func FromSaveResponse(resp *saveReservation.Response) *SaveReservationResponse {
	return &SaveReservationResponse{
		Reservation: FromReservation(resp.Reservation),
		Warnings:    Warnings(resp.Warnings),
		Project:     FromProjectView(resp.Project),
	}
}
