package change_reservation_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

// Request модель запроса на смену статуса
type Request struct {
	ID        uuid.UUID
	Status    string
	Confirmed bool // подтверждение пользователя для annulee и terminee
}

// Response модель ответа
type Response struct {
	Reservation *domain.Reservation
	Changed     bool
	Project     *reservations.ProjectView // nil, если перезагрузка не удалась
}
