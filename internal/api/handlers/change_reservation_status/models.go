package change_reservation_status

import (
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	changeStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/change_reservation_status"
)

// ChangeStatusRequest тело запроса смены статуса
type ChangeStatusRequest struct {
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed"`
}

// ChangeStatusResponse HTTP ответ после смены статуса
type ChangeStatusResponse struct {
	Reservation handlers.ReservationResponse  `json:"reservation"`
	Changed     bool                          `json:"changed"`
	Project     *handlers.ProjectViewResponse `json:"project,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *ChangeStatusResponse {
	return &ChangeStatusResponse{
		Reservation: handlers.FromReservation(resp.Reservation),
		Changed:     resp.Changed,
		Project:     handlers.FromProjectView(resp.Project),
	}
}
