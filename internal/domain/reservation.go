package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus статус бронирования консультанта
type ReservationStatus string

const (
	StatusPrevue    ReservationStatus = "prevue"
	StatusConfirmee ReservationStatus = "confirmee"
	StatusEnCours   ReservationStatus = "en_cours"
	StatusTerminee  ReservationStatus = "terminee"
	StatusAnnulee   ReservationStatus = "annulee"
)

// ErrInvalidStatus возвращается при разборе неизвестного статуса
var ErrInvalidStatus = errors.New("invalid reservation status")

// ParseReservationStatus проверяет строку и возвращает статус
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// IsTerminal возвращает true для статусов, из которых нельзя выйти
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusTerminee || s == StatusAnnulee
}

// RequiresConfirmation возвращает true, если переход в статус необратим и требует подтверждения
func (s ReservationStatus) RequiresConfirmation() bool {
	return s.IsTerminal()
}

// Reservation бронирование консультанта на строку заказа проекта
type Reservation struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	PrestationID *uuid.UUID // nil, если хранилище не поддерживает привязку к строке заказа
	ConsultantID uuid.UUID
	DateDebut    types.Date
	DateFin      types.Date
	ChargePct    float64
	Status       ReservationStatus
	RoleProjet   *string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование участвует в планировании (не отменено)
func (r *Reservation) IsActive() bool {
	return r.Status != StatusAnnulee
}

// IsCancelled возвращает true для отмененного бронирования
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusAnnulee
}

// IsDone возвращает true для выполненного бронирования
func (r *Reservation) IsDone() bool {
	return r.Status == StatusTerminee
}

// Units количество единиц нагрузки бронирования
func (r *Reservation) Units() float64 {
	return UnitsBetween(r.DateDebut, r.DateFin, r.ChargePct, r.Status)
}

// Overlaps проверяет пересечение периодов (границы включительно)
func (r *Reservation) Overlaps(from, to types.Date) bool {
	return !r.DateDebut.IsAfter(to) && !r.DateFin.IsBefore(from)
}

// LinkedTo проверяет привязку к строке заказа
func (r *Reservation) LinkedTo(prestationID uuid.UUID) bool {
	return r.PrestationID != nil && *r.PrestationID == prestationID
}

// ReservationsFilter фильтр списка бронирований
type ReservationsFilter struct {
	ProjectID        *uuid.UUID
	PrestationID     *uuid.UUID
	ConsultantID     *uuid.UUID
	From             *types.Date // пересечение с периодом [From, To]
	To               *types.Date
	ExcludeID        *uuid.UUID
	IncludeCancelled bool
}
