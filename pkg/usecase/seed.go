package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/infra/fixture"
)

// Seed writes the fixture into repo. Records with existing ids are
// overwritten; other records are left alone.
func Seed(ctx context.Context, repo interfaces.Repository, fx *fixture.Fixture, now time.Time) error {
	logger := ctxlog.From(ctx)
	releases, incidents, stats := fx.Models(now)

	for _, r := range releases {
		if err := repo.PutRelease(ctx, r); err != nil {
			return goerr.Wrap(err, "failed to seed release", goerr.V("id", r.ID))
		}
	}
	for _, inc := range incidents {
		if err := repo.PutIncident(ctx, inc); err != nil {
			return goerr.Wrap(err, "failed to seed incident", goerr.V("id", inc.ID))
		}
	}
	for _, s := range stats {
		if err := repo.PutPeriodStats(ctx, s); err != nil {
			return goerr.Wrap(err, "failed to seed period stats", goerr.V("period", s.Period))
		}
	}

	logger.Info("Seeded dashboard data",
		"store", repo.Name(),
		"releases", len(releases),
		"incidents", len(incidents),
		"period_stats", len(stats),
	)
	return nil
}
