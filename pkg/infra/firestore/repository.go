package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionReleases    = "releases"
	collectionIncidents   = "incidents"
	collectionPeriodStats = "period_stats"
)

// Repository stores dashboard records in Firestore. Insertion order is kept
// by ordering on created_at, which the usecases always set.
type Repository struct {
	client *firestore.Client
	prefix string
}

var _ interfaces.Repository = (*Repository)(nil)

// Option configures Repository
type Option func(*Repository)

// WithCollectionPrefix prepends prefix to every collection name. Tests use it
// to isolate runs in a shared database.
func WithCollectionPrefix(prefix string) Option {
	return func(r *Repository) {
		r.prefix = prefix
	}
}

// New connects to the Firestore database
func New(ctx context.Context, projectID, databaseID string, clientOpts []option.ClientOption, opts ...Option) (*Repository, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	r := &Repository{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close releases the Firestore client
func (r *Repository) Close() error {
	return r.client.Close()
}

// Name implements interfaces.Repository
func (r *Repository) Name() string { return "firestore" }

func (r *Repository) collection(name string) *firestore.CollectionRef {
	return r.client.Collection(r.prefix + name)
}

// ListReleases implements interfaces.Repository
func (r *Repository) ListReleases(ctx context.Context) ([]*model.Release, error) {
	docs, err := r.collection(collectionReleases).OrderBy("created_at", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases")
	}

	releases := make([]*model.Release, 0, len(docs))
	for _, doc := range docs {
		var rel model.Release
		if err := doc.DataTo(&rel); err != nil {
			return nil, goerr.Wrap(err, "failed to decode release", goerr.V("doc_id", doc.Ref.ID))
		}
		releases = append(releases, &rel)
	}
	return releases, nil
}

// GetRelease implements interfaces.Repository
func (r *Repository) GetRelease(ctx context.Context, id types.ReleaseID) (*model.Release, error) {
	doc, err := r.collection(collectionReleases).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get release", goerr.V("id", id))
	}

	var rel model.Release
	if err := doc.DataTo(&rel); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release", goerr.V("id", id))
	}
	return &rel, nil
}

// PutRelease implements interfaces.Repository
func (r *Repository) PutRelease(ctx context.Context, release *model.Release) error {
	if _, err := r.collection(collectionReleases).Doc(release.ID.String()).Set(ctx, release); err != nil {
		return goerr.Wrap(err, "failed to put release", goerr.V("id", release.ID))
	}
	return nil
}

// ListIncidents implements interfaces.Repository
func (r *Repository) ListIncidents(ctx context.Context) ([]*model.Incident, error) {
	docs, err := r.collection(collectionIncidents).OrderBy("created_at", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	incidents := make([]*model.Incident, 0, len(docs))
	for _, doc := range docs {
		var inc model.Incident
		if err := doc.DataTo(&inc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode incident", goerr.V("doc_id", doc.Ref.ID))
		}
		incidents = append(incidents, &inc)
	}
	return incidents, nil
}

// GetIncident implements interfaces.Repository
func (r *Repository) GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	doc, err := r.collection(collectionIncidents).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}

	var inc model.Incident
	if err := doc.DataTo(&inc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode incident", goerr.V("id", id))
	}
	return &inc, nil
}

// PutIncident implements interfaces.Repository
func (r *Repository) PutIncident(ctx context.Context, incident *model.Incident) error {
	if _, err := r.collection(collectionIncidents).Doc(incident.ID.String()).Set(ctx, incident); err != nil {
		return goerr.Wrap(err, "failed to put incident", goerr.V("id", incident.ID))
	}
	return nil
}

// DeleteIncident implements interfaces.Repository. Firestore treats deleting
// a missing document as success.
func (r *Repository) DeleteIncident(ctx context.Context, id types.IncidentID) error {
	if _, err := r.collection(collectionIncidents).Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}
	return nil
}

// GetPeriodStats implements interfaces.Repository
func (r *Repository) GetPeriodStats(ctx context.Context, period types.Period) (*model.PeriodStats, error) {
	doc, err := r.collection(collectionPeriodStats).Doc(string(period)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get period stats", goerr.V("period", period))
	}

	var stats model.PeriodStats
	if err := doc.DataTo(&stats); err != nil {
		return nil, goerr.Wrap(err, "failed to decode period stats", goerr.V("period", period))
	}
	return &stats, nil
}

// PutPeriodStats implements interfaces.Repository
func (r *Repository) PutPeriodStats(ctx context.Context, stats *model.PeriodStats) error {
	if _, err := r.collection(collectionPeriodStats).Doc(string(stats.Period)).Set(ctx, stats); err != nil {
		return goerr.Wrap(err, "failed to put period stats", goerr.V("period", stats.Period))
	}
	return nil
}
