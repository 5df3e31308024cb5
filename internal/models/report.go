package models

import (
	"sort"
	"time"
)

// StudentInfo is best-effort metadata scanned from the document header. Missing fields stay empty.
type StudentInfo struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Program string `json:"program"`
	Batch   string `json:"batch"`
}

// Report is the assembled result of one run.
type Report struct {
	RunID        string                   `json:"run_id"`
	Source       string                   `json:"source"`
	Student      StudentInfo              `json:"student"`
	Subjects     map[string]*SubjectStats `json:"subjects"`
	Records      []LectureRecord          `json:"-"`
	RejectedRows int                      `json:"rejected_rows"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

// ReportTotals are the document-wide counts.
type ReportTotals struct {
	TotalLectures     int     `json:"total_lectures"`
	TotalPresent      int     `json:"total_present"`
	TotalAbsent       int     `json:"total_absent"`
	OverallPercentage float64 `json:"overall_percentage"`
}

// SubjectNames returns subject keys in alphabetical order, the order renderers iterate in.
func (r *Report) SubjectNames() []string {
	names := make([]string, 0, len(r.Subjects))
	for name := range r.Subjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Totals sums every subject bucket.
func (r *Report) Totals() ReportTotals {
	var totals ReportTotals
	for _, stats := range r.Subjects {
		totals.TotalLectures += stats.Total
		totals.TotalPresent += stats.Present
		totals.TotalAbsent += stats.Absent
	}
	totals.OverallPercentage = Percentage(totals.TotalPresent, totals.TotalLectures)
	return totals
}
