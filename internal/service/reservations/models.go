package reservations

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ViewFilter параметры списка бронирований проекта
type ViewFilter struct {
	PrestationID     *uuid.UUID // учитывается только при поддержке привязки
	IncludeCancelled bool
}

// ProjectView бронирования проекта и статистика по строкам заказа
// Статистика пересчитывается при каждой загрузке
type ProjectView struct {
	ProjectID    uuid.UUID
	Reservations []*domain.Reservation
	ServiceLines []domain.ServiceLineStats
	Linkage      bool
}
