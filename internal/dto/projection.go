package dto

import "github.com/noah-isme/attendance-report/internal/models"

// ProjectionRequest is the free-form calculator input.
type ProjectionRequest struct {
	Present      int     `json:"present" validate:"gte=0,ltefield=Total"`
	Total        int     `json:"total" validate:"gte=0"`
	TotalPlanned int     `json:"total_planned" validate:"omitempty,gtefield=Total"`
	TargetPct    float64 `json:"target_pct" validate:"omitempty,gt=0,lte=100"`
}

// SubjectProjectionQuery binds the query string of the per-subject projection endpoint.
type SubjectProjectionQuery struct {
	Planned   int     `form:"planned" validate:"gte=0"`
	TargetPct float64 `form:"target" validate:"omitempty,gt=0,lte=100"`
}

// SubjectProjectionResponse pairs a subject with its projection.
type SubjectProjectionResponse struct {
	Subject    string            `json:"subject"`
	Projection models.Projection `json:"projection"`
}

// ReportResponse is the JSON view of a built report.
type ReportResponse struct {
	RunID       string                  `json:"run_id"`
	Source      string                  `json:"source"`
	Student     models.StudentInfo      `json:"student"`
	Totals      models.ReportTotals     `json:"totals"`
	Subjects    []models.SubjectSummary `json:"subjects"`
	GeneratedAt string                  `json:"generated_at"`
}

// SubjectSearchResponse lists subject names matching a query.
type SubjectSearchResponse struct {
	Query    string   `json:"query"`
	Subjects []string `json:"subjects"`
}
