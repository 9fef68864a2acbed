package types

// All is the sentinel filter value meaning "no filter"
const All = "All"

// ReleaseID identifies a release
type ReleaseID string

func (x ReleaseID) String() string { return string(x) }

// IncidentID identifies an incident, e.g. INC-001
type IncidentID string

func (x IncidentID) String() string { return string(x) }

// ChatSessionID identifies a chat panel session
type ChatSessionID string

func (x ChatSessionID) String() string { return string(x) }

// DeletionToken identifies a pending incident deletion
type DeletionToken string

func (x DeletionToken) String() string { return string(x) }

// ReleaseStatus is the deployment state of a release
type ReleaseStatus string

const (
	ReleaseStatusPlanned  ReleaseStatus = "Planned"
	ReleaseStatusDeployed ReleaseStatus = "Deployed"
)

// Valid reports whether the status is one of the known values
func (x ReleaseStatus) Valid() bool {
	switch x {
	case ReleaseStatusPlanned, ReleaseStatusDeployed:
		return true
	}
	return false
}

// Quality is the binary Good/Bad classification of a release
type Quality string

const (
	QualityGood Quality = "Good"
	QualityBad  Quality = "Bad"
)

// Qualities lists all known qualities in display order
var Qualities = []Quality{QualityGood, QualityBad}

// Valid reports whether the quality is one of the known values
func (x Quality) Valid() bool {
	switch x {
	case QualityGood, QualityBad:
		return true
	}
	return false
}

// Period is the statistics bucket selected on the dashboard
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// DefaultPeriod is used when the selected period is empty or unknown
const DefaultPeriod = PeriodMonth

// Periods lists all known periods in display order
var Periods = []Period{PeriodMonth, PeriodQuarter, PeriodYear}

// Valid reports whether the period is one of the known values
func (x Period) Valid() bool {
	switch x {
	case PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// Trend is the direction of a statistic compared with the previous period
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// ChatRole is the author of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatState is the state of a chat panel turn
type ChatState string

const (
	ChatStateIdle    ChatState = "idle"
	ChatStateSending ChatState = "sending"
)

// ActivityKind tells which entity an activity item was projected from
type ActivityKind string

const (
	ActivityKindRelease  ActivityKind = "release"
	ActivityKindIncident ActivityKind = "incident"
)
