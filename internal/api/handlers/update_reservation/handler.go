package update_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	saveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/save_reservation"
)

const (
	msgInvalidReservationID = "Identifiant de réservation invalide"
	msgInvalidRequestBody   = "Corps de requête invalide"
	msgInvalidIdentifier    = "Identifiant invalide"
	msgNotFound             = "Réservation introuvable"
	msgFinalStatus          = "La réservation est terminée ou annulée et ne peut plus être modifiée"
	msgConfirmationRequired = "Ce changement de statut est définitif, utilisez le changement de statut avec confirmation"
)

type Handler struct {
	useCase SaveReservationUseCase
	logger  Logger
}

func NewHandler(useCase SaveReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := uuid.Parse(mux.Vars(r)["reservationId"])
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req handlers.ReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToSaveRequest(&reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIdentifier)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if v, ok := domain.AsViolation(err); ok {
			h.logger.Warn("PUT /reservations/{id} - Rejected: id=%s, reason=%s", reservationID, v.Message)
			handlers.RespondViolation(w, v)
			return
		}

		switch {
		case errors.Is(err, saveReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, saveReservation.ErrInvalidTransition):
			h.logger.Warn("PUT /reservations/{id} - Final status: id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgFinalStatus)

		case errors.Is(err, saveReservation.ErrConfirmationRequired):
			h.logger.Warn("PUT /reservations/{id} - Confirmation required: id=%s", reservationID)
			handlers.RespondError(w, http.StatusPreconditionRequired, msgConfirmationRequired)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: id=%s, warnings=%d",
		reservationID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSaveResponse(result))
}
