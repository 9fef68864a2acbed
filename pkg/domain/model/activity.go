package model

import (
	"fmt"
	"sort"

	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// ActivityItem is a feed entry projected from a release or an incident
type ActivityItem struct {
	Kind    types.ActivityKind `json:"kind"`
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Date    string             `json:"date"`
	Summary string             `json:"summary"`
}

// BuildActivity merges releases and incidents into a feed sorted by date,
// newest first. Items with the same date keep source order, releases first.
// limit <= 0 returns every item.
func BuildActivity(releases []*Release, incidents []*Incident, limit int) []*ActivityItem {
	items := make([]*ActivityItem, 0, len(releases)+len(incidents))

	for _, r := range releases {
		items = append(items, &ActivityItem{
			Kind:    types.ActivityKindRelease,
			ID:      r.ID.String(),
			Title:   r.DisplayName(),
			Date:    r.Date,
			Summary: fmt.Sprintf("%s release by %s (%s)", r.Status, r.DRI, r.Quality),
		})
	}
	for _, inc := range incidents {
		items = append(items, &ActivityItem{
			Kind:    types.ActivityKindIncident,
			ID:      inc.ID.String(),
			Title:   inc.Name,
			Date:    inc.DateReported,
			Summary: "Incident linked to " + inc.LinkedRelease.Name,
		})
	}

	// Dates use DateLayout, so string order is chronological
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
