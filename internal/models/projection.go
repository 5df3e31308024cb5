package models

// StandingStatus is the summary-export classification of a subject.
type StandingStatus string

const (
	StatusSafe     StandingStatus = "Safe"
	StatusWarning  StandingStatus = "Warning"
	StatusCritical StandingStatus = "Critical"
)

// Projection answers "how many lectures to attend or may skip" for one subject.
type Projection struct {
	Present        int     `json:"present"`
	Total          int     `json:"total"`
	TargetPct      float64 `json:"target_pct"`
	Percentage     float64 `json:"percentage"`
	InGoodStanding bool    `json:"in_good_standing"`
	// NeededToReach is only meaningful when Achievable is true.
	NeededToReach int  `json:"needed_to_reach"`
	Achievable    bool `json:"achievable"`

	// Plan-dependent fields are zero unless a planned total was supplied.
	TotalPlanned        int  `json:"total_planned,omitempty"`
	Remaining           int  `json:"remaining,omitempty"`
	Skippable           int  `json:"skippable"`
	ReachableWithinPlan bool `json:"reachable_within_plan"`
	RemainingAfter      int  `json:"remaining_after,omitempty"`
}

// SubjectSummary is the render-ready view of one subject: counts plus derived values, so renderers
// never recompute anything.
type SubjectSummary struct {
	Subject     string         `json:"subject"`
	Total       int            `json:"total"`
	Present     int            `json:"present"`
	Absent      int            `json:"absent"`
	Unknown     int            `json:"unknown"`
	Percentage  float64        `json:"percentage"`
	AbsentDates []string       `json:"absent_dates"`
	Status      StandingStatus `json:"status"`
	Projection  Projection     `json:"projection"`
}
