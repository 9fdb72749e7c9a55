package validate_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	validateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

// ValidateReservationRequest тело запроса проверки
// id задается при проверке изменения существующего бронирования
type ValidateReservationRequest struct {
	ID string `json:"id,omitempty"`
	handlers.ReservationRequest
}

// ValidateReservationResponse результат проверки без записи
type ValidateReservationResponse struct {
	Accepted bool     `json:"accepted"`
	Error    *string  `json:"error"`
	Kind     string   `json:"kind,omitempty"`
	Warnings []string `json:"warnings"`
	Units    float64  `json:"units"`
}

// FromUseCaseResult конвертирует результат проверки в HTTP response
func FromUseCaseResult(result *validateReservation.Result, units float64) *ValidateReservationResponse {
	resp := &ValidateReservationResponse{
		Accepted: result.Accepted(),
		Warnings: handlers.Warnings(result.Warnings),
		Units:    units,
	}
	if result.Blocking != nil {
		msg := result.Blocking.Message
		resp.Error = &msg
		resp.Kind = validateReservation.KindLabel(result.Blocking)
	}
	return resp
}
