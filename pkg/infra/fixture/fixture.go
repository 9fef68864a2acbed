package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"google.golang.org/api/option"
)

//go:embed default.toml
var defaultFixture []byte

// Fixture is the seed data of the dashboard
type Fixture struct {
	Releases    []Release     `toml:"releases"`
	Incidents   []Incident    `toml:"incidents"`
	PeriodStats []PeriodStats `toml:"period_stats"`
}

// Release is the TOML form of model.Release
type Release struct {
	ID            string `toml:"id"`
	BusinessUnit  string `toml:"business_unit"`
	Product       string `toml:"product"`
	Name          string `toml:"name"`
	Date          string `toml:"date"`
	DRI           string `toml:"dri"`
	NotesLink     string `toml:"notes_link"`
	Status        string `toml:"status"`
	Quality       string `toml:"quality"`
	Description   string `toml:"description"`
	IncidentCount int    `toml:"incident_count"`
}

// Incident is the TOML form of model.Incident. The link name is resolved from
// release_id when the fixture is converted.
type Incident struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	DateReported string `toml:"date_reported"`
	Description  string `toml:"description"`
	DocumentLink string `toml:"document_link"`
	ReleaseID    string `toml:"release_id"`
}

// PeriodStats is the TOML form of model.PeriodStats
type PeriodStats struct {
	Period            string  `toml:"period"`
	QualityPercentage float64 `toml:"quality_percentage"`
	QualityTrend      string  `toml:"quality_trend"`
	ActiveProducts    int     `toml:"active_products"`
	ProductsTrend     string  `toml:"products_trend"`
	TotalReleases     int     `toml:"total_releases"`
	ReleasesTrend     string  `toml:"releases_trend"`
	Incidents         int     `toml:"incidents"`
	IncidentsTrend    string  `toml:"incidents_trend"`
}

// Default returns the embedded sample fixture
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Parse decodes TOML fixture data and validates enum values
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return nil, goerr.Wrap(err, "failed to decode fixture")
	}

	for _, r := range fx.Releases {
		if !types.ReleaseStatus(r.Status).Valid() {
			return nil, goerr.New("invalid release status in fixture", goerr.V("id", r.ID), goerr.V("status", r.Status))
		}
		if !types.Quality(r.Quality).Valid() {
			return nil, goerr.New("invalid release quality in fixture", goerr.V("id", r.ID), goerr.V("quality", r.Quality))
		}
	}
	for _, s := range fx.PeriodStats {
		if !types.Period(s.Period).Valid() {
			return nil, goerr.New("invalid period in fixture", goerr.V("period", s.Period))
		}
	}

	return &fx, nil
}

// Load reads a fixture from a local path or a gs://bucket/object URL. An
// empty src returns the embedded default.
func Load(ctx context.Context, src string, clientOpts ...option.ClientOption) (*Fixture, error) {
	if src == "" {
		return Default()
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "gs://") {
		data, err = readGCS(ctx, src, clientOpts...)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fixture", goerr.V("src", src))
	}

	return Parse(data)
}

func readGCS(ctx context.Context, src string, clientOpts ...option.ClientOption) ([]byte, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(src, "gs://"), "/")
	if !ok || bucket == "" || object == "" {
		return nil, goerr.New("invalid gs:// fixture URL", goerr.V("src", src))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open fixture object",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Models converts the fixture into domain records. CreatedAt is spaced one
// millisecond apart from base so stores that order by it keep fixture order.
// Incident link names are computed from the referenced release; a dangling
// release_id keeps the id with an empty name.
func (x *Fixture) Models(base time.Time) ([]*model.Release, []*model.Incident, []*model.PeriodStats) {
	releases := make([]*model.Release, 0, len(x.Releases))
	byID := make(map[types.ReleaseID]*model.Release, len(x.Releases))
	for i, r := range x.Releases {
		rel := &model.Release{
			ID:            types.ReleaseID(r.ID),
			BusinessUnit:  r.BusinessUnit,
			Product:       r.Product,
			Name:          r.Name,
			Date:          r.Date,
			DRI:           r.DRI,
			NotesLink:     r.NotesLink,
			Status:        types.ReleaseStatus(r.Status),
			Quality:       types.Quality(r.Quality),
			Description:   r.Description,
			IncidentCount: r.IncidentCount,
			CreatedAt:     base.Add(time.Duration(i) * time.Millisecond),
		}
		releases = append(releases, rel)
		byID[rel.ID] = rel
	}

	incidents := make([]*model.Incident, 0, len(x.Incidents))
	for i, inc := range x.Incidents {
		ref := model.ReleaseRef{ID: types.ReleaseID(inc.ReleaseID)}
		if rel, ok := byID[ref.ID]; ok {
			ref = rel.Ref()
		}
		incidents = append(incidents, &model.Incident{
			ID:            types.IncidentID(inc.ID),
			Name:          inc.Name,
			DateReported:  inc.DateReported,
			Description:   inc.Description,
			DocumentLink:  inc.DocumentLink,
			LinkedRelease: ref,
			CreatedAt:     base.Add(time.Duration(i) * time.Millisecond),
		})
	}

	stats := make([]*model.PeriodStats, 0, len(x.PeriodStats))
	for _, s := range x.PeriodStats {
		stats = append(stats, &model.PeriodStats{
			Period:            types.Period(s.Period),
			QualityPercentage: s.QualityPercentage,
			QualityTrend:      types.Trend(s.QualityTrend),
			ActiveProducts:    s.ActiveProducts,
			ProductsTrend:     types.Trend(s.ProductsTrend),
			TotalReleases:     s.TotalReleases,
			ReleasesTrend:     types.Trend(s.ReleasesTrend),
			Incidents:         s.Incidents,
			IncidentsTrend:    types.Trend(s.IncidentsTrend),
		})
	}

	return releases, incidents, stats
}
