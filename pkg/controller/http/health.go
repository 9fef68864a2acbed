package http

import (
	"net/http"

	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(storeName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, &model.HealthStatus{
			Status:  "healthy",
			Service: types.ServiceName,
			Version: types.Version,
			Store:   storeName,
		})
	}
}
