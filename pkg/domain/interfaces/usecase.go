package interfaces

import (
	"context"

	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// DashboardUseCase derives the aggregated dashboard views
type DashboardUseCase interface {
	// Dashboard returns summary, period statistics and filter options for the selection
	Dashboard(ctx context.Context, sel model.FilterSelection) (*model.Dashboard, error)
	// FilterOptions returns the allowed values of each selector
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
	// Activity returns the newest feed items, up to limit
	Activity(ctx context.Context, limit int) ([]*model.ActivityItem, error)
}

// ReleaseUseCase defines release list and form operations
type ReleaseUseCase interface {
	ListReleases(ctx context.Context, sel model.FilterSelection, page int) (*model.Page[*model.Release], error)
	GetRelease(ctx context.Context, id types.ReleaseID) (*model.Release, error)
	CreateRelease(ctx context.Context, input *model.ReleaseInput) (*model.Release, error)
	UpdateRelease(ctx context.Context, id types.ReleaseID, input *model.ReleaseInput) (*model.Release, error)
}

// IncidentUseCase defines incident list, linkage and two-phase deletion
type IncidentUseCase interface {
	ListIncidents(ctx context.Context, page int) (*model.Page[*model.Incident], error)
	GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error)
	// CreateIncident fails with an invalid_input error when the release does not exist.
	CreateIncident(ctx context.Context, input *model.IncidentInput) (*model.Incident, error)
	// RelinkIncident points the incident at another release. Unknown ids are a silent no-op.
	RelinkIncident(ctx context.Context, incidentID types.IncidentID, releaseID types.ReleaseID) (*model.Incident, error)
	// RequestDelete returns (nil, nil) for an incident that does not exist.
	RequestDelete(ctx context.Context, incidentID types.IncidentID) (*model.DeletionRequest, error)
	ConfirmDelete(ctx context.Context, token types.DeletionToken) error
	CancelDelete(ctx context.Context, token types.DeletionToken) error
}

// ChatUseCase drives the chat panel turns
type ChatUseCase interface {
	CreateSession(ctx context.Context) (*model.ChatSession, error)
	GetSession(ctx context.Context, id types.ChatSessionID) (*model.ChatSession, error)
	// Submit appends the user message and the assistant reply. On failure the
	// user message is kept and the session returns to idle.
	Submit(ctx context.Context, id types.ChatSessionID, content string) (*model.ChatSession, error)
	CloseSession(ctx context.Context, id types.ChatSessionID) error
}
