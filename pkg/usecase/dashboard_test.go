package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
	"github.com/m-mizutani/relboard/pkg/infra/memory"
	"github.com/m-mizutani/relboard/pkg/usecase"
)

func TestDashboardUseCase_Dashboard(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDashboard(newSeededRepo(t))

	tests := []struct {
		name       string
		sel        model.FilterSelection
		wantTotal  int
		wantPeriod types.Period
		wantStatsN int
		wantBU     string
	}{
		{
			name:       "no filter",
			sel:        model.NewFilterSelection(),
			wantTotal:  4,
			wantPeriod: types.PeriodMonth,
			wantStatsN: 4,
			wantBU:     types.All,
		},
		{
			name:       "security only",
			sel:        model.FilterSelection{BusinessUnit: "Security", Product: types.All, Quality: types.All, Period: types.PeriodMonth},
			wantTotal:  1,
			wantPeriod: types.PeriodMonth,
			wantStatsN: 4,
			wantBU:     "Security",
		},
		{
			name:       "quarter swaps the statistics table",
			sel:        model.FilterSelection{BusinessUnit: "Security", Period: types.PeriodQuarter},
			wantTotal:  1,
			wantPeriod: types.PeriodQuarter,
			wantStatsN: 13,
			wantBU:     "Security",
		},
		{
			name:       "unknown values are ignored",
			sel:        model.FilterSelection{BusinessUnit: "Finance", Quality: "Meh", Period: "decade"},
			wantTotal:  4,
			wantPeriod: types.PeriodMonth,
			wantStatsN: 4,
			wantBU:     types.All,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := uc.Dashboard(ctx, tt.sel)
			gt.NoError(t, err)
			gt.V(t, d.Summary.TotalReleases).Equal(tt.wantTotal)
			gt.V(t, d.Selection.Period).Equal(tt.wantPeriod)
			gt.V(t, d.Selection.BusinessUnit).Equal(tt.wantBU)
			gt.V(t, d.Stats.Period).Equal(tt.wantPeriod)
			gt.V(t, d.Stats.TotalReleases).Equal(tt.wantStatsN)
		})
	}
}

func TestDashboardUseCase_Idempotent(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDashboard(newSeededRepo(t))
	sel := model.FilterSelection{BusinessUnit: "Consumer", Product: types.All, Quality: types.All}

	first, err := uc.Dashboard(ctx, sel)
	gt.NoError(t, err)
	second, err := uc.Dashboard(ctx, sel)
	gt.NoError(t, err)

	gt.V(t, first.Summary).Equal(second.Summary)
	gt.V(t, first.Summary.TotalReleases).Equal(2)
}

func TestDashboardUseCase_MissingPeriodFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gt.NoError(t, repo.PutPeriodStats(ctx, &model.PeriodStats{Period: types.PeriodMonth, TotalReleases: 7}))

	uc := usecase.NewDashboard(repo)
	d, err := uc.Dashboard(ctx, model.FilterSelection{Period: types.PeriodYear})
	gt.NoError(t, err)
	gt.V(t, d.Stats.TotalReleases).Equal(7)
	gt.V(t, d.Summary.TotalReleases).Equal(0)
}

func TestDashboardUseCase_Activity(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDashboard(newSeededRepo(t))

	items, err := uc.Activity(ctx, 0)
	gt.NoError(t, err)
	gt.A(t, items).Length(7)
	gt.V(t, items[0].ID).Equal("3")

	items, err = uc.Activity(ctx, 3)
	gt.NoError(t, err)
	gt.A(t, items).Length(3)
}

func TestDashboardUseCase_FilterOptions(t *testing.T) {
	uc := usecase.NewDashboard(newSeededRepo(t))
	opts, err := uc.FilterOptions(context.Background())
	gt.NoError(t, err)
	gt.V(t, opts.BusinessUnits).Equal([]string{types.All, "Consumer", "Platform", "Security"})
	gt.V(t, opts.Periods).Equal([]types.Period{types.PeriodMonth, types.PeriodQuarter, types.PeriodYear})
}
