package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/attendance-report/internal/models"
)

// DetailRow is one lecture in the detail export.
type DetailRow struct {
	SrNo           int    `csv:"sr_no"`
	Course         string `csv:"course"`
	Date           string `csv:"date"`
	StartTime      string `csv:"start_time"`
	EndTime        string `csv:"end_time"`
	Attendance     string `csv:"attendance"`
	SubjectCleaned string `csv:"subject_cleaned"`
}

// SummaryRow is one subject in the summary export.
type SummaryRow struct {
	Subject       string `csv:"Subject"`
	TotalLectures int    `csv:"Total Lectures"`
	Present       int    `csv:"Present"`
	Absent        int    `csv:"Absent"`
	Attendance    string `csv:"Attendance %"`
	Status        string `csv:"Status"`
}

// CSVExporter renders attendance data into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// RenderDetail writes one row per accepted lecture in document order.
func (e *CSVExporter) RenderDetail(records []models.LectureRecord) ([]byte, error) {
	rows := make([]DetailRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, DetailRow{
			SrNo:           rec.SequenceNumber,
			Course:         rec.RawCourseLabel,
			Date:           rec.Date,
			StartTime:      rec.StartTime,
			EndTime:        rec.EndTime,
			Attendance:     rec.RawMark,
			SubjectCleaned: rec.CanonicalSubject,
		})
	}
	return marshal(&rows)
}

// RenderSummary writes one row per subject in the order given.
func (e *CSVExporter) RenderSummary(summaries []models.SubjectSummary) ([]byte, error) {
	rows := make([]SummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, SummaryRow{
			Subject:       s.Subject,
			TotalLectures: s.Total,
			Present:       s.Present,
			Absent:        s.Absent,
			Attendance:    fmt.Sprintf("%.2f", s.Percentage),
			Status:        string(s.Status),
		})
	}
	return marshal(&rows)
}

func marshal(rows interface{}) ([]byte, error) {
	payload, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return payload, nil
}
