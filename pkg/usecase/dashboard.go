package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// DefaultActivityLimit is used when Activity is called with a non-positive limit
const DefaultActivityLimit = 10

type dashboardUseCase struct {
	repo interfaces.Repository
}

// NewDashboard creates a new instance of DashboardUseCase
func NewDashboard(repo interfaces.Repository) interfaces.DashboardUseCase {
	return &dashboardUseCase{
		repo: repo,
	}
}

// Dashboard filters the releases by the selection and attaches the statistics
// table of the selected period. Statistics are not derived from the filtered
// set; the period only swaps the precomputed table.
func (uc *dashboardUseCase) Dashboard(ctx context.Context, sel model.FilterSelection) (*model.Dashboard, error) {
	releases, err := uc.repo.ListReleases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases")
	}

	opts := model.BuildFilterOptions(releases)
	sel = sel.Normalize(opts)
	filtered := model.FilterReleases(releases, sel)

	stats, err := uc.periodStats(ctx, sel.Period)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Dashboard derived",
		"business_unit", sel.BusinessUnit,
		"product", sel.Product,
		"quality", sel.Quality,
		"period", sel.Period,
		"matched", len(filtered),
		"total", len(releases),
	)

	return &model.Dashboard{
		Selection: sel,
		Options:   opts,
		Summary:   model.Summarize(filtered),
		Stats:     stats,
	}, nil
}

// periodStats returns the table for period, falling back to the default
// period when it is missing
func (uc *dashboardUseCase) periodStats(ctx context.Context, period types.Period) (*model.PeriodStats, error) {
	stats, err := uc.repo.GetPeriodStats(ctx, period)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get period stats", goerr.V("period", period))
	}
	if stats != nil || period == types.DefaultPeriod {
		return stats, nil
	}

	stats, err = uc.repo.GetPeriodStats(ctx, types.DefaultPeriod)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get default period stats")
	}
	return stats, nil
}

// FilterOptions returns the selector values derived from current releases
func (uc *dashboardUseCase) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	releases, err := uc.repo.ListReleases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases")
	}
	opts := model.BuildFilterOptions(releases)
	return &opts, nil
}

// Activity returns the merged release and incident feed
func (uc *dashboardUseCase) Activity(ctx context.Context, limit int) ([]*model.ActivityItem, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	releases, err := uc.repo.ListReleases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases")
	}
	incidents, err := uc.repo.ListIncidents(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	return model.BuildActivity(releases, incidents, limit), nil
}
