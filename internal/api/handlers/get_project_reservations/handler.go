package get_project_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgInvalidProjectID    = "Identifiant de projet invalide"
	msgInvalidPrestationID = "Identifiant de prestation invalide"
	msgInvalidFlag         = "Paramètre includeCancelled invalide"
	msgProjectNotFound     = "Projet introuvable"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/projects/{projectId}/reservations?prestationId=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["projectId"])
	if err != nil {
		h.logger.Warn("GET /projects/{id}/reservations - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	query := r.URL.Query()
	var filter reservations.ViewFilter

	if raw := query.Get("prestationId"); raw != "" {
		prestationID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /projects/{id}/reservations - Invalid prestation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPrestationID)
			return
		}
		filter.PrestationID = &prestationID
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /projects/{id}/reservations - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		filter.IncludeCancelled = include
	}

	view, err := h.service.GetProjectView(r.Context(), projectID, filter)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrProjectNotFound):
			h.logger.Warn("GET /projects/{id}/reservations - Project not found: project=%s", projectID)
			handlers.RespondNotFound(w, msgProjectNotFound)

		default:
			h.logger.Error("GET /projects/{id}/reservations - Failed to load project: project=%s, error=%v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /projects/{id}/reservations - project=%s, reservations=%d, service_lines=%d",
		projectID, len(view.Reservations), len(view.ServiceLines))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromProjectView(view))
}
