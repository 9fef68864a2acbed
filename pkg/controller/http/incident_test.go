package http_test

import (
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

func TestIncidentEndpoints_Relink(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("existing release", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPut, "/api/v1/incidents/INC-001/link", map[string]string{"release_id": "2"})
		gt.V(t, w.Code).Equal(http.StatusOK)
		got := decode[model.Incident](t, w)
		gt.V(t, got.LinkedRelease).Equal(model.ReleaseRef{ID: "2", Name: "User Authentication v1.5"})

		w = doRequest(t, server, http.MethodGet, "/api/v1/releases/2", nil)
		release := decode[model.Release](t, w)
		gt.V(t, release.IncidentCount).Equal(3)
	})

	t.Run("unknown release leaves incident unchanged", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPut, "/api/v1/incidents/INC-002/link", map[string]string{"release_id": "999"})
		gt.V(t, w.Code).Equal(http.StatusOK)
		got := decode[model.Incident](t, w)
		gt.V(t, got.LinkedRelease.ID).Equal(types.ReleaseID("2"))
	})

	t.Run("unknown incident", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPut, "/api/v1/incidents/INC-404/link", map[string]string{"release_id": "2"})
		gt.V(t, w.Code).Equal(http.StatusNoContent)
	})
}

func TestIncidentEndpoints_Delete(t *testing.T) {
	server := newTestServer(t, nil)

	w := doRequest(t, server, http.MethodPost, "/api/v1/incidents/INC-003/delete-requests", nil)
	gt.V(t, w.Code).Equal(http.StatusAccepted)
	req := decode[model.DeletionRequest](t, w)
	gt.V(t, req.IncidentID).Equal(types.IncidentID("INC-003"))

	// still present until confirmed
	w = doRequest(t, server, http.MethodGet, "/api/v1/incidents/INC-003", nil)
	gt.V(t, w.Code).Equal(http.StatusOK)

	w = doRequest(t, server, http.MethodPost, "/api/v1/deletions/"+req.Token.String()+"/confirm", nil)
	gt.V(t, w.Code).Equal(http.StatusNoContent)

	w = doRequest(t, server, http.MethodGet, "/api/v1/incidents/INC-003", nil)
	gt.V(t, w.Code).Equal(http.StatusNotFound)

	w = doRequest(t, server, http.MethodPost, "/api/v1/deletions/"+req.Token.String()+"/confirm", nil)
	gt.V(t, w.Code).Equal(http.StatusNotFound)

	t.Run("cancel", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/v1/incidents/INC-002/delete-requests", nil)
		req := decode[model.DeletionRequest](t, w)

		w = doRequest(t, server, http.MethodDelete, "/api/v1/deletions/"+req.Token.String(), nil)
		gt.V(t, w.Code).Equal(http.StatusNoContent)

		w = doRequest(t, server, http.MethodGet, "/api/v1/incidents/INC-002", nil)
		gt.V(t, w.Code).Equal(http.StatusOK)
	})

	t.Run("unknown incident", func(t *testing.T) {
		w := doRequest(t, server, http.MethodPost, "/api/v1/incidents/INC-404/delete-requests", nil)
		gt.V(t, w.Code).Equal(http.StatusNoContent)
		gt.V(t, w.Body.Len()).Equal(0)
	})
}

func TestIncidentEndpoints_CreateAndList(t *testing.T) {
	server := newTestServer(t, nil)

	w := doRequest(t, server, http.MethodPost, "/api/v1/incidents", model.IncidentInput{
		Name:         "Card declines spike",
		DateReported: "2024-04-02",
		ReleaseID:    "1",
	})
	gt.V(t, w.Code).Equal(http.StatusCreated)
	created := decode[model.Incident](t, w)
	gt.V(t, created.ID).Equal(types.IncidentID("INC-004"))
	gt.V(t, created.LinkedRelease.Name).Equal("Payments Gateway v2.3")

	w = doRequest(t, server, http.MethodGet, "/api/v1/incidents?page=2", nil)
	gt.V(t, w.Code).Equal(http.StatusOK)
	page := decode[model.Page[*model.Incident]](t, w)
	gt.V(t, page.TotalItems).Equal(4)
	gt.A(t, page.Items).Length(1)
	gt.V(t, page.Items[0].ID).Equal(types.IncidentID("INC-004"))

	w = doRequest(t, server, http.MethodPost, "/api/v1/incidents", map[string]string{"release_id": "1"})
	gt.V(t, w.Code).Equal(http.StatusBadRequest)

	t.Run("unknown release", func(t *testing.T) {
		for _, releaseID := range []types.ReleaseID{"999", ""} {
			w := doRequest(t, server, http.MethodPost, "/api/v1/incidents", model.IncidentInput{
				Name:         "Orphan",
				DateReported: "2024-04-03",
				ReleaseID:    releaseID,
			})
			gt.V(t, w.Code).Equal(http.StatusBadRequest)
		}

		w := doRequest(t, server, http.MethodGet, "/api/v1/incidents", nil)
		page := decode[model.Page[*model.Incident]](t, w)
		gt.V(t, page.TotalItems).Equal(4)
	})
}
