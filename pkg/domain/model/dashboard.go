package model

// Dashboard is the aggregated view returned for a filter selection
type Dashboard struct {
	Selection FilterSelection `json:"selection"`
	Options   FilterOptions   `json:"options"`
	Summary   Summary         `json:"summary"`
	Stats     *PeriodStats    `json:"stats"`
}
