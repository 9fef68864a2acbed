package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

type releaseHandler struct {
	uc interfaces.ReleaseUseCase
}

func (h *releaseHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.uc.ListReleases(r.Context(), querySelection(r), queryInt(r, "page", 1))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (h *releaseHandler) get(w http.ResponseWriter, r *http.Request) {
	release, err := h.uc.GetRelease(r.Context(), types.ReleaseID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, release)
}

func (h *releaseHandler) create(w http.ResponseWriter, r *http.Request) {
	var input model.ReleaseInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	release, err := h.uc.CreateRelease(r.Context(), &input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, release)
}

func (h *releaseHandler) update(w http.ResponseWriter, r *http.Request) {
	var input model.ReleaseInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	release, err := h.uc.UpdateRelease(r.Context(), types.ReleaseID(chi.URLParam(r, "id")), &input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, release)
}
