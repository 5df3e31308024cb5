package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-report/internal/models"
	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
	"github.com/noah-isme/attendance-report/pkg/extract"
)

// ReportServiceConfig holds the two independent threshold sets.
type ReportServiceConfig struct {
	// TargetPct is the good-standing threshold used by projections.
	TargetPct float64
	// SafePct and WarningPct band the summary status column.
	SafePct    float64
	WarningPct float64
}

// ReportService turns extracted documents into report models and render-ready summaries.
type ReportService struct {
	normalizer *RecordNormalizer
	projector  *ThresholdProjector
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        ReportServiceConfig
	now        func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(normalizer *RecordNormalizer, projector *ThresholdProjector, metrics *MetricsService, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if normalizer == nil {
		normalizer = NewRecordNormalizer(nil)
	}
	if projector == nil {
		projector = NewThresholdProjector(DefaultProjectionCap)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TargetPct <= 0 {
		cfg.TargetPct = 80
	}
	if cfg.SafePct <= 0 {
		cfg.SafePct = 75
	}
	if cfg.WarningPct <= 0 {
		cfg.WarningPct = 70
	}
	return &ReportService{
		normalizer: normalizer,
		projector:  projector,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Build normalises every table row of doc, aggregates the accepted records and assembles the report.
// A document without a single accepted row yields ErrNoData.
func (s *ReportService) Build(ctx context.Context, doc *extract.Document) (*models.Report, error) {
	if doc == nil {
		return nil, appErrors.Clone(appErrors.ErrNoData, "")
	}
	started := s.now()

	var (
		records  []models.LectureRecord
		rejected int
	)
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, table := range page.Tables {
			for ri, row := range table {
				rec, ok := s.normalizer.Accept(models.RawRow(row))
				s.metrics.ObserveRow(ok)
				if !ok {
					rejected++
					s.logger.Debug("row rejected", zap.Int("page", page.Number), zap.Int("row", ri), zap.Strings("cells", row))
					continue
				}
				records = append(records, rec)
			}
		}
	}
	s.metrics.ObservePages(len(doc.Pages))

	if len(records) == 0 {
		s.logger.Warn("no attendance records extracted", zap.String("source", doc.Source), zap.Int("pages", len(doc.Pages)), zap.Int("rejected", rejected))
		return nil, appErrors.Clone(appErrors.ErrNoData, "")
	}

	report := &models.Report{
		RunID:        uuid.NewString(),
		Source:       doc.Source,
		Student:      ScanStudentInfo(doc.FirstPageText()),
		Subjects:     Aggregate(records),
		Records:      records,
		RejectedRows: rejected,
		GeneratedAt:  s.now(),
	}

	for _, stats := range report.Subjects {
		if _, ok := s.projector.NeededToReach(stats.Present, stats.Total, s.cfg.TargetPct); !ok {
			s.metrics.ObserveProjectionCapHit()
		}
	}
	totals := report.Totals()
	s.metrics.ObserveReport(len(report.Subjects), totals.TotalLectures, s.now().Sub(started))
	s.logger.Info("report built",
		zap.String("run_id", report.RunID),
		zap.String("source", doc.Source),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("records", len(records)),
		zap.Int("rejected", rejected),
		zap.Int("subjects", len(report.Subjects)),
	)
	return report, nil
}

// Classify maps a percentage onto the summary status bands.
func (s *ReportService) Classify(pct float64) models.StandingStatus {
	switch {
	case pct >= s.cfg.SafePct:
		return models.StatusSafe
	case pct >= s.cfg.WarningPct:
		return models.StatusWarning
	default:
		return models.StatusCritical
	}
}

// TargetPct is the configured good-standing threshold.
func (s *ReportService) TargetPct() float64 {
	return s.cfg.TargetPct
}

// Summarize builds the render-ready view of one subject.
func (s *ReportService) Summarize(stats *models.SubjectStats) models.SubjectSummary {
	proj, _ := s.projector.Project(stats.Present, stats.Total, s.cfg.TargetPct, 0)
	pct := stats.Percentage()
	return models.SubjectSummary{
		Subject:     stats.Subject,
		Total:       stats.Total,
		Present:     stats.Present,
		Absent:      stats.Absent,
		Unknown:     stats.Unknown(),
		Percentage:  pct,
		AbsentDates: append([]string{}, stats.AbsentDates...),
		Status:      s.Classify(pct),
		Projection:  proj,
	}
}

// Summaries returns one summary per subject in alphabetical order.
func (s *ReportService) Summaries(report *models.Report) []models.SubjectSummary {
	names := report.SubjectNames()
	summaries := make([]models.SubjectSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, s.Summarize(report.Subjects[name]))
	}
	return summaries
}

// Subject resolves a subject by name, ignoring case.
func (s *ReportService) Subject(report *models.Report, name string) (*models.SubjectStats, error) {
	if stats, ok := report.Subjects[name]; ok {
		return stats, nil
	}
	for key, stats := range report.Subjects {
		if strings.EqualFold(key, name) {
			return stats, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
}

// FindSubjects ranks subject names against a loose query. An empty query lists every subject.
func (s *ReportService) FindSubjects(report *models.Report, query string) []string {
	names := report.SubjectNames()
	query = strings.TrimSpace(query)
	if query == "" {
		return names
	}
	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)
	matches := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, rank.Target)
	}
	return matches
}

// SortByPercentage orders summaries by percentage descending, ties by subject name.
func SortByPercentage(summaries []models.SubjectSummary) []models.SubjectSummary {
	sorted := append([]models.SubjectSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Percentage != sorted[j].Percentage {
			return sorted[i].Percentage > sorted[j].Percentage
		}
		return sorted[i].Subject < sorted[j].Subject
	})
	return sorted
}
