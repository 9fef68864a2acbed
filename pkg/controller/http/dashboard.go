package http

import (
	"net/http"

	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
)

type dashboardHandler struct {
	uc            interfaces.DashboardUseCase
	activityLimit int
}

func (h *dashboardHandler) getDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.uc.Dashboard(r.Context(), querySelection(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dashboard)
}

func (h *dashboardHandler) getFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.uc.FilterOptions(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, opts)
}

// getActivity returns the feed; a non-positive limit falls back to the default
func (h *dashboardHandler) getActivity(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", h.activityLimit)
	if limit <= 0 {
		limit = h.activityLimit
	}

	items, err := h.uc.Activity(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": items})
}
