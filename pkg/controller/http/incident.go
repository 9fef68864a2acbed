package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

type incidentHandler struct {
	uc interfaces.IncidentUseCase
}

type relinkRequest struct {
	ReleaseID types.ReleaseID `json:"release_id"`
}

func (h *incidentHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.uc.ListIncidents(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (h *incidentHandler) get(w http.ResponseWriter, r *http.Request) {
	incident, err := h.uc.GetIncident(r.Context(), types.IncidentID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, incident)
}

func (h *incidentHandler) create(w http.ResponseWriter, r *http.Request) {
	var input model.IncidentInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	incident, err := h.uc.CreateIncident(r.Context(), &input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, incident)
}

// relink answers 204 when the incident does not exist; relinking is a
// silent no-op for unknown ids
func (h *incidentHandler) relink(w http.ResponseWriter, r *http.Request) {
	var req relinkRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	incident, err := h.uc.RelinkIncident(r.Context(), types.IncidentID(chi.URLParam(r, "id")), req.ReleaseID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if incident == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, incident)
}

// requestDelete answers 204 without a token when the incident is already gone
func (h *incidentHandler) requestDelete(w http.ResponseWriter, r *http.Request) {
	req, err := h.uc.RequestDelete(r.Context(), types.IncidentID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if req == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusAccepted, req)
}

func (h *incidentHandler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.ConfirmDelete(r.Context(), types.DeletionToken(chi.URLParam(r, "token"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *incidentHandler) cancelDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.CancelDelete(r.Context(), types.DeletionToken(chi.URLParam(r, "token"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
