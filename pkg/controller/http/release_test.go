package http_test

import (
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

func TestReleaseEndpoints(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("list paginates", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/v1/releases?page=2", nil)
		gt.V(t, w.Code).Equal(http.StatusOK)

		got := decode[model.Page[*model.Release]](t, w)
		gt.V(t, got.Page).Equal(2)
		gt.V(t, got.TotalPages).Equal(2)
		gt.V(t, got.HasPrev).Equal(true)
		gt.V(t, got.HasNext).Equal(false)
		gt.A(t, got.Items).Length(1)
	})

	t.Run("invalid page becomes 1", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/v1/releases?page=abc", nil)
		gt.V(t, w.Code).Equal(http.StatusOK)
		got := decode[model.Page[*model.Release]](t, w)
		gt.V(t, got.Page).Equal(1)
		gt.A(t, got.Items).Length(3)
	})

	t.Run("filtered list", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/v1/releases?quality=Bad", nil)
		got := decode[model.Page[*model.Release]](t, w)
		gt.A(t, got.Items).Length(1)
		gt.V(t, got.Items[0].ID).Equal(types.ReleaseID("2"))
	})

	t.Run("get", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/v1/releases/3", nil)
		gt.V(t, w.Code).Equal(http.StatusOK)
		got := decode[model.Release](t, w)
		gt.V(t, got.Product).Equal("Threat Detection")
	})

	t.Run("get unknown", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/v1/releases/999", nil)
		gt.V(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("create and update", func(t *testing.T) {
		input := model.ReleaseInput{
			BusinessUnit: "Platform",
			Product:      "Billing",
			Name:         "v1.0",
			Date:         "2024-04-02",
			Status:       types.ReleaseStatusPlanned,
			Quality:      types.QualityGood,
		}
		w := doRequest(t, server, http.MethodPost, "/api/v1/releases", input)
		gt.V(t, w.Code).Equal(http.StatusCreated)
		created := decode[model.Release](t, w)
		gt.V(t, created.ID).Equal(types.ReleaseID("5"))

		input.Status = types.ReleaseStatusDeployed
		w = doRequest(t, server, http.MethodPut, "/api/v1/releases/5", input)
		gt.V(t, w.Code).Equal(http.StatusOK)
		updated := decode[model.Release](t, w)
		gt.V(t, updated.Status).Equal(types.ReleaseStatusDeployed)
	})

	t.Run("create with invalid enum", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/v1/releases", map[string]string{
			"business_unit": "Platform",
			"product":       "Billing",
			"name":          "v2.0",
			"status":        "Shipped",
			"quality":       "Good",
		})
		gt.V(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/v1/releases", map[string]string{"unknown": "field"})
		gt.V(t, w.Code).Equal(http.StatusBadRequest)
	})
}
