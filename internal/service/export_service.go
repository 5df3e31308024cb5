package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-report/internal/models"
	"github.com/noah-isme/attendance-report/pkg/export"
)

type artifactStore interface {
	Save(filename string, data []byte) (string, error)
}

type csvRenderer interface {
	RenderDetail(records []models.LectureRecord) ([]byte, error)
	RenderSummary(summaries []models.SubjectSummary) ([]byte, error)
}

type htmlRenderer interface {
	Render(data export.HTMLReport) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, caption []string) ([]byte, error)
}

// ExportConfig names the artifacts of a run.
type ExportConfig struct {
	HTMLFile       string
	DetailCSVFile  string
	SummaryCSVFile string
	PDFEnabled     bool
	PDFFile        string
	SearchCap      int
}

// ExportResult lists the paths written by a run.
type ExportResult struct {
	HTMLPath       string
	DetailCSVPath  string
	SummaryCSVPath string
	PDFPath        string
}

// Paths returns the written paths in write order.
func (r *ExportResult) Paths() []string {
	paths := []string{r.HTMLPath, r.DetailCSVPath, r.SummaryCSVPath}
	if r.PDFPath != "" {
		paths = append(paths, r.PDFPath)
	}
	return paths
}

// ExportService renders a report into its artifacts and persists them.
type ExportService struct {
	reports *ReportService
	storage artifactStore
	csv     csvRenderer
	html    htmlRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService. Nil renderers fall back to the package defaults.
func NewExportService(reports *ReportService, storage artifactStore, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, html htmlRenderer, pdf pdfRenderer) (*ExportService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HTMLFile == "" {
		cfg.HTMLFile = "attendance_report.html"
	}
	if cfg.DetailCSVFile == "" {
		cfg.DetailCSVFile = "attendance_report.csv"
	}
	if cfg.SummaryCSVFile == "" {
		cfg.SummaryCSVFile = "attendance_summary.csv"
	}
	if cfg.PDFFile == "" {
		cfg.PDFFile = "attendance_summary.pdf"
	}
	if cfg.SearchCap <= 0 {
		cfg.SearchCap = DefaultProjectionCap
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if html == nil {
		exporter, err := export.NewHTMLExporter()
		if err != nil {
			return nil, err
		}
		html = exporter
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		reports: reports,
		storage: storage,
		csv:     csv,
		html:    html,
		pdf:     pdf,
		logger:  logger,
		cfg:     cfg,
	}, nil
}

// RenderHTML renders the report page without persisting it.
func (s *ExportService) RenderHTML(report *models.Report) ([]byte, error) {
	return s.renderHTML(report, s.reports.Summaries(report))
}

func (s *ExportService) renderHTML(report *models.Report, summaries []models.SubjectSummary) ([]byte, error) {
	return s.html.Render(export.HTMLReport{
		Student:     report.Student,
		Totals:      report.Totals(),
		Subjects:    summaries,
		TargetPct:   s.reports.TargetPct(),
		SearchCap:   s.cfg.SearchCap,
		GeneratedAt: report.GeneratedAt,
	})
}

// WriteAll renders every artifact before saving any, so a render failure leaves nothing behind.
func (s *ExportService) WriteAll(ctx context.Context, report *models.Report) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summaries := s.reports.Summaries(report)

	htmlPayload, err := s.renderHTML(report, summaries)
	if err != nil {
		return nil, err
	}
	detailPayload, err := s.csv.RenderDetail(report.Records)
	if err != nil {
		return nil, err
	}
	summaryPayload, err := s.csv.RenderSummary(SortByPercentage(summaries))
	if err != nil {
		return nil, err
	}
	var pdfPayload []byte
	if s.cfg.PDFEnabled {
		pdfPayload, err = s.pdf.Render(summaryDataset(summaries), "Attendance Summary", studentCaption(report))
		if err != nil {
			return nil, err
		}
	}

	result := &ExportResult{}
	if result.HTMLPath, err = s.storage.Save(s.cfg.HTMLFile, htmlPayload); err != nil {
		return nil, err
	}
	if result.DetailCSVPath, err = s.storage.Save(s.cfg.DetailCSVFile, detailPayload); err != nil {
		return nil, err
	}
	if result.SummaryCSVPath, err = s.storage.Save(s.cfg.SummaryCSVFile, summaryPayload); err != nil {
		return nil, err
	}
	if pdfPayload != nil {
		if result.PDFPath, err = s.storage.Save(s.cfg.PDFFile, pdfPayload); err != nil {
			return nil, err
		}
	}

	s.logger.Info("artifacts written", zap.String("run_id", report.RunID), zap.Strings("paths", result.Paths()))
	return result, nil
}

func summaryDataset(summaries []models.SubjectSummary) export.Dataset {
	data := export.Dataset{Headers: []string{"Subject", "Total", "Present", "Absent", "Attendance %", "Status"}}
	for _, s := range SortByPercentage(summaries) {
		data.Rows = append(data.Rows, []string{
			s.Subject,
			fmt.Sprintf("%d", s.Total),
			fmt.Sprintf("%d", s.Present),
			fmt.Sprintf("%d", s.Absent),
			fmt.Sprintf("%.2f", s.Percentage),
			string(s.Status),
		})
	}
	return data
}

func studentCaption(report *models.Report) []string {
	na := func(v string) string {
		if v == "" {
			return "N/A"
		}
		return v
	}
	return []string{
		fmt.Sprintf("Name: %s    SAP ID: %s", na(report.Student.Name), na(report.Student.ID)),
		fmt.Sprintf("Program: %s    Batch: %s", na(report.Student.Program), na(report.Student.Batch)),
		fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC1123)),
	}
}
