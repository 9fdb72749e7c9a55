package change_reservation_status

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	changeStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/change_reservation_status"
)

const (
	msgInvalidReservationID = "Identifiant de réservation invalide"
	msgInvalidRequestBody   = "Corps de requête invalide"
	msgInvalidStatus        = "Statut inconnu : %s"
	msgConfirmationRequired = "Ce changement de statut est définitif, une confirmation est requise"
	msgNotFound             = "Réservation introuvable"
	msgFinalStatus          = "La réservation est terminée ou annulée et ne peut plus changer de statut"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := uuid.Parse(mux.Vars(r)["reservationId"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		ID:        reservationID,
		Status:    req.Status,
		Confirmed: req.Confirmed,
	})
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: id=%s, status=%q", reservationID, req.Status)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidStatus, req.Status))

		case errors.Is(err, changeStatus.ErrConfirmationRequired):
			h.logger.Warn("PATCH /reservations/{id}/status - Confirmation required: id=%s, status=%s", reservationID, req.Status)
			handlers.RespondError(w, http.StatusPreconditionRequired, msgConfirmationRequired)

		case errors.Is(err, changeStatus.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Final status: id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgFinalStatus)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to change status: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - id=%s, status=%s, changed=%t",
		reservationID, result.Reservation.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
