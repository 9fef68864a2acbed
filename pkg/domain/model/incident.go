package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// ReleaseRef is a denormalized link from an incident to a release. Name is
// computed when the link is made and is not kept in sync with the release.
type ReleaseRef struct {
	ID   types.ReleaseID `json:"id" firestore:"id"`
	Name string          `json:"name" firestore:"name"`
}

// Incident is a production incident attributed to exactly one release
type Incident struct {
	ID            types.IncidentID `json:"id" firestore:"id"`
	Name          string           `json:"name" firestore:"name"`
	DateReported  string           `json:"date_reported" firestore:"date_reported"`
	Description   string           `json:"description" firestore:"description"`
	DocumentLink  string           `json:"document_link" firestore:"document_link"`
	LinkedRelease ReleaseRef       `json:"linked_release" firestore:"linked_release"`
	CreatedAt     time.Time        `json:"created_at" firestore:"created_at"`
}

// Copy returns a shallow copy; Incident has no reference fields
func (x *Incident) Copy() *Incident {
	c := *x
	return &c
}

// IncidentInput holds the fields of the incident creation form
type IncidentInput struct {
	Name         string          `json:"name"`
	DateReported string          `json:"date_reported"`
	Description  string          `json:"description"`
	DocumentLink string          `json:"document_link"`
	ReleaseID    types.ReleaseID `json:"release_id"`
}

// Validate checks required fields
func (x *IncidentInput) Validate() error {
	if strings.TrimSpace(x.Name) == "" {
		return goerr.New("name is required", goerr.T(types.ErrTagInvalidInput))
	}
	if x.DateReported != "" {
		if _, err := time.Parse(DateLayout, x.DateReported); err != nil {
			return goerr.Wrap(err, "invalid date_reported",
				goerr.T(types.ErrTagInvalidInput),
				goerr.V("date_reported", x.DateReported))
		}
	}
	return nil
}

// DeletionRequest is the pending first phase of a two-phase incident delete
type DeletionRequest struct {
	Token       types.DeletionToken `json:"token"`
	IncidentID  types.IncidentID    `json:"incident_id"`
	RequestedAt time.Time           `json:"requested_at"`
}
