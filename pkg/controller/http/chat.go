package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

type chatHandler struct {
	uc interfaces.ChatUseCase
}

type submitRequest struct {
	Content string `json:"content"`
}

func (h *chatHandler) createSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.uc.CreateSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, session)
}

func (h *chatHandler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.uc.GetSession(r.Context(), types.ChatSessionID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (h *chatHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := h.uc.Submit(r.Context(), types.ChatSessionID(chi.URLParam(r, "id")), req.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (h *chatHandler) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.CloseSession(r.Context(), types.ChatSessionID(chi.URLParam(r, "id"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
