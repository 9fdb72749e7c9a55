package validate_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide"
	msgInvalidIdentifier  = "Identifiant invalide"
)

type Handler struct {
	useCase ValidateReservationUseCase
	logger  Logger
}

func NewHandler(useCase ValidateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/validate
// Проверка без записи: нарушение возвращается в теле ответа со статусом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := handlers.ParseOptionalUUID(req.ID)
	if err != nil {
		h.logger.Warn("POST /reservations/validate - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIdentifier)
		return
	}

	candidate, err := req.ToReservation(id)
	if err != nil {
		h.logger.Warn("POST /reservations/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIdentifier)
		return
	}

	result, err := h.useCase.Validate(r.Context(), candidate)
	if err != nil {
		h.logger.Error("POST /reservations/validate - Validation failed: project=%s, consultant=%s, error=%v",
			candidate.ProjectID, candidate.ConsultantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reservations/validate - accepted=%t, warnings=%d", result.Accepted(), len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResult(result, candidate.Units()))
}
