package create_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide"
	msgInvalidIdentifier  = "Identifiant invalide"
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

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.ReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToSaveRequest(nil)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIdentifier)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if v, ok := domain.AsViolation(err); ok {
			h.logger.Warn("POST /reservations - Rejected: project=%s, consultant=%s, reason=%s",
				useCaseReq.ProjectID, useCaseReq.ConsultantID, v.Message)
			handlers.RespondViolation(w, v)
			return
		}
		h.logger.Error("POST /reservations - Failed to create reservation: project=%s, consultant=%s, error=%v",
			useCaseReq.ProjectID, useCaseReq.ConsultantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, project=%s, warnings=%d",
		result.Reservation.ID, result.Reservation.ProjectID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromSaveResponse(result))
}
