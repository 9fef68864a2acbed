package interfaces

import (
	"context"

	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// Repository is the state container of releases, incidents and period
// statistics. List methods return records in insertion order. Get methods
// return nil without error when the record does not exist. Returned records
// are copies owned by the caller.
type Repository interface {
	ListReleases(ctx context.Context) ([]*model.Release, error)
	GetRelease(ctx context.Context, id types.ReleaseID) (*model.Release, error)
	PutRelease(ctx context.Context, release *model.Release) error

	ListIncidents(ctx context.Context) ([]*model.Incident, error)
	GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error)
	PutIncident(ctx context.Context, incident *model.Incident) error
	// DeleteIncident removes the incident; deleting a missing incident is not an error
	DeleteIncident(ctx context.Context, id types.IncidentID) error

	GetPeriodStats(ctx context.Context, period types.Period) (*model.PeriodStats, error)
	PutPeriodStats(ctx context.Context, stats *model.PeriodStats) error

	// Name identifies the backend in health output
	Name() string
}
