package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// DateLayout is the layout of release and incident dates
const DateLayout = "2006-01-02"

// Release is a single product release listed on the dashboard
type Release struct {
	ID            types.ReleaseID     `json:"id" firestore:"id"`
	BusinessUnit  string              `json:"business_unit" firestore:"business_unit"`
	Product       string              `json:"product" firestore:"product"`
	Name          string              `json:"name" firestore:"name"`
	Date          string              `json:"date" firestore:"date"`
	DRI           string              `json:"dri" firestore:"dri"`
	NotesLink     string              `json:"notes_link" firestore:"notes_link"`
	Status        types.ReleaseStatus `json:"status" firestore:"status"`
	Quality       types.Quality       `json:"quality" firestore:"quality"`
	Description   string              `json:"description" firestore:"description"`
	IncidentCount int                 `json:"incident_count" firestore:"incident_count"`
	CreatedAt     time.Time           `json:"created_at" firestore:"created_at"`
}

// DisplayName is the "<product> <release name>" label used by incident links
func (x *Release) DisplayName() string {
	return x.Product + " " + x.Name
}

// Ref returns a denormalized reference to the release
func (x *Release) Ref() ReleaseRef {
	return ReleaseRef{ID: x.ID, Name: x.DisplayName()}
}

// Copy returns a shallow copy; Release has no reference fields
func (x *Release) Copy() *Release {
	c := *x
	return &c
}

// ReleaseInput holds the editable fields of a release form
type ReleaseInput struct {
	BusinessUnit string              `json:"business_unit"`
	Product      string              `json:"product"`
	Name         string              `json:"name"`
	Date         string              `json:"date"`
	DRI          string              `json:"dri"`
	NotesLink    string              `json:"notes_link"`
	Status       types.ReleaseStatus `json:"status"`
	Quality      types.Quality       `json:"quality"`
	Description  string              `json:"description"`
}

// Validate checks required fields and enum membership
func (x *ReleaseInput) Validate() error {
	if strings.TrimSpace(x.BusinessUnit) == "" {
		return goerr.New("business_unit is required", goerr.T(types.ErrTagInvalidInput))
	}
	if strings.TrimSpace(x.Product) == "" {
		return goerr.New("product is required", goerr.T(types.ErrTagInvalidInput))
	}
	if strings.TrimSpace(x.Name) == "" {
		return goerr.New("name is required", goerr.T(types.ErrTagInvalidInput))
	}
	if !x.Status.Valid() {
		return goerr.New("invalid release status",
			goerr.T(types.ErrTagInvalidInput),
			goerr.V("status", x.Status))
	}
	if !x.Quality.Valid() {
		return goerr.New("invalid release quality",
			goerr.T(types.ErrTagInvalidInput),
			goerr.V("quality", x.Quality))
	}
	if x.Date != "" {
		if _, err := time.Parse(DateLayout, x.Date); err != nil {
			return goerr.Wrap(err, "invalid release date",
				goerr.T(types.ErrTagInvalidInput),
				goerr.V("date", x.Date))
		}
	}
	return nil
}

// Apply overwrites the editable fields of the release with the input.
// ID, IncidentCount and CreatedAt are left as they are.
func (x *ReleaseInput) Apply(r *Release) {
	r.BusinessUnit = x.BusinessUnit
	r.Product = x.Product
	r.Name = x.Name
	r.Date = x.Date
	r.DRI = x.DRI
	r.NotesLink = x.NotesLink
	r.Status = x.Status
	r.Quality = x.Quality
	r.Description = x.Description
}
