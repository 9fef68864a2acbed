package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// Repository keeps every record in process memory. Nothing survives a
// restart. Records are copied on the way in and out.
type Repository struct {
	mu        sync.RWMutex
	releases  []*model.Release
	incidents []*model.Incident
	stats     map[types.Period]*model.PeriodStats
}

var _ interfaces.Repository = (*Repository)(nil)

// New creates an empty in-memory repository
func New() *Repository {
	return &Repository{
		stats: make(map[types.Period]*model.PeriodStats),
	}
}

// Name implements interfaces.Repository
func (r *Repository) Name() string { return "memory" }

// ListReleases implements interfaces.Repository
func (r *Repository) ListReleases(ctx context.Context) ([]*model.Release, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Release, len(r.releases))
	for i, rel := range r.releases {
		out[i] = rel.Copy()
	}
	return out, nil
}

// GetRelease implements interfaces.Repository
func (r *Repository) GetRelease(ctx context.Context, id types.ReleaseID) (*model.Release, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slices.IndexFunc(r.releases, func(x *model.Release) bool { return x.ID == id })
	if idx < 0 {
		return nil, nil
	}
	return r.releases[idx].Copy(), nil
}

// PutRelease implements interfaces.Repository. An existing release keeps its
// position in the list.
func (r *Repository) PutRelease(ctx context.Context, release *model.Release) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.releases, func(x *model.Release) bool { return x.ID == release.ID })
	if idx < 0 {
		r.releases = append(r.releases, release.Copy())
	} else {
		r.releases[idx] = release.Copy()
	}
	return nil
}

// ListIncidents implements interfaces.Repository
func (r *Repository) ListIncidents(ctx context.Context) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Incident, len(r.incidents))
	for i, inc := range r.incidents {
		out[i] = inc.Copy()
	}
	return out, nil
}

// GetIncident implements interfaces.Repository
func (r *Repository) GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slices.IndexFunc(r.incidents, func(x *model.Incident) bool { return x.ID == id })
	if idx < 0 {
		return nil, nil
	}
	return r.incidents[idx].Copy(), nil
}

// PutIncident implements interfaces.Repository
func (r *Repository) PutIncident(ctx context.Context, incident *model.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.incidents, func(x *model.Incident) bool { return x.ID == incident.ID })
	if idx < 0 {
		r.incidents = append(r.incidents, incident.Copy())
	} else {
		r.incidents[idx] = incident.Copy()
	}
	return nil
}

// DeleteIncident implements interfaces.Repository
func (r *Repository) DeleteIncident(ctx context.Context, id types.IncidentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.incidents = slices.DeleteFunc(r.incidents, func(x *model.Incident) bool { return x.ID == id })
	return nil
}

// GetPeriodStats implements interfaces.Repository
func (r *Repository) GetPeriodStats(ctx context.Context, period types.Period) (*model.PeriodStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stats[period]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

// PutPeriodStats implements interfaces.Repository
func (r *Repository) PutPeriodStats(ctx context.Context, stats *model.PeriodStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *stats
	r.stats[stats.Period] = &c
	return nil
}
