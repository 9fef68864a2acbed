package model

import (
	"math"
	"slices"

	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// FilterSelection is the dashboard filter state. Each field holds a concrete
// value or types.All.
type FilterSelection struct {
	BusinessUnit string       `json:"business_unit"`
	Product      string       `json:"product"`
	Quality      string       `json:"quality"`
	Period       types.Period `json:"period"`
}

// NewFilterSelection returns a selection with every filter set to All and
// the default period
func NewFilterSelection() FilterSelection {
	return FilterSelection{
		BusinessUnit: types.All,
		Product:      types.All,
		Quality:      types.All,
		Period:       types.DefaultPeriod,
	}
}

// FilterOptions are the allowed values of each selector. Slices start with
// types.All, except Periods.
type FilterOptions struct {
	BusinessUnits []string       `json:"business_units"`
	Products      []string       `json:"products"`
	Qualities     []string       `json:"qualities"`
	Periods       []types.Period `json:"periods"`
}

// BuildFilterOptions collects the distinct business units and products of
// releases in first-seen order
func BuildFilterOptions(releases []*Release) FilterOptions {
	opts := FilterOptions{
		BusinessUnits: []string{types.All},
		Products:      []string{types.All},
		Qualities:     []string{types.All},
		Periods:       slices.Clone(types.Periods),
	}
	for _, q := range types.Qualities {
		opts.Qualities = append(opts.Qualities, string(q))
	}
	for _, r := range releases {
		if r.BusinessUnit != "" && !slices.Contains(opts.BusinessUnits, r.BusinessUnit) {
			opts.BusinessUnits = append(opts.BusinessUnits, r.BusinessUnit)
		}
		if r.Product != "" && !slices.Contains(opts.Products, r.Product) {
			opts.Products = append(opts.Products, r.Product)
		}
	}
	return opts
}

// Normalize replaces empty or unknown values with All (or the default
// period). Invalid selections are never an error.
func (x FilterSelection) Normalize(opts FilterOptions) FilterSelection {
	pick := func(v string, allowed []string) string {
		if v == "" || !slices.Contains(allowed, v) {
			return types.All
		}
		return v
	}

	n := FilterSelection{
		BusinessUnit: pick(x.BusinessUnit, opts.BusinessUnits),
		Product:      pick(x.Product, opts.Products),
		Quality:      pick(x.Quality, opts.Qualities),
		Period:       x.Period,
	}
	if !n.Period.Valid() {
		n.Period = types.DefaultPeriod
	}
	return n
}

// Match reports whether every non-All field equals the release field
func (x FilterSelection) Match(r *Release) bool {
	if x.BusinessUnit != "" && x.BusinessUnit != types.All && x.BusinessUnit != r.BusinessUnit {
		return false
	}
	if x.Product != "" && x.Product != types.All && x.Product != r.Product {
		return false
	}
	if x.Quality != "" && x.Quality != types.All && x.Quality != string(r.Quality) {
		return false
	}
	return true
}

// FilterReleases returns the releases matching the selection in source order.
// The input slice is not modified.
func FilterReleases(releases []*Release, sel FilterSelection) []*Release {
	filtered := make([]*Release, 0, len(releases))
	for _, r := range releases {
		if sel.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Summary holds aggregates computed from a filtered release set
type Summary struct {
	TotalReleases  int     `json:"total_releases"`
	Deployed       int     `json:"deployed"`
	Planned        int     `json:"planned"`
	Good           int     `json:"good"`
	Bad            int     `json:"bad"`
	GoodPercentage float64 `json:"good_percentage"`
	ActiveProducts int     `json:"active_products"`
	TotalIncidents int     `json:"total_incidents"`
}

// Summarize computes aggregates over releases. GoodPercentage is rounded to
// one decimal and is 0 for an empty set.
func Summarize(releases []*Release) Summary {
	var s Summary
	products := make(map[string]struct{})

	for _, r := range releases {
		s.TotalReleases++
		switch r.Status {
		case types.ReleaseStatusDeployed:
			s.Deployed++
		case types.ReleaseStatusPlanned:
			s.Planned++
		}
		switch r.Quality {
		case types.QualityGood:
			s.Good++
		case types.QualityBad:
			s.Bad++
		}
		products[r.Product] = struct{}{}
		s.TotalIncidents += r.IncidentCount
	}

	s.ActiveProducts = len(products)
	if s.TotalReleases > 0 {
		s.GoodPercentage = math.Round(float64(s.Good)/float64(s.TotalReleases)*1000) / 10
	}
	return s
}

// PeriodStats is the precomputed statistics table of one period bucket
type PeriodStats struct {
	Period            types.Period `json:"period" firestore:"period"`
	QualityPercentage float64      `json:"quality_percentage" firestore:"quality_percentage"`
	QualityTrend      types.Trend  `json:"quality_trend" firestore:"quality_trend"`
	ActiveProducts    int          `json:"active_products" firestore:"active_products"`
	ProductsTrend     types.Trend  `json:"products_trend" firestore:"products_trend"`
	TotalReleases     int          `json:"total_releases" firestore:"total_releases"`
	ReleasesTrend     types.Trend  `json:"releases_trend" firestore:"releases_trend"`
	Incidents         int          `json:"incidents" firestore:"incidents"`
	IncidentsTrend    types.Trend  `json:"incidents_trend" firestore:"incidents_trend"`
}
