package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/attendance-report/api/swagger"
	"github.com/noah-isme/attendance-report/internal/handler"
	"github.com/noah-isme/attendance-report/internal/models"
	"github.com/noah-isme/attendance-report/internal/service"
	"github.com/noah-isme/attendance-report/pkg/config"
	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
	"github.com/noah-isme/attendance-report/pkg/extract"
	"github.com/noah-isme/attendance-report/pkg/logger"
	"github.com/noah-isme/attendance-report/pkg/storage"
)

// @title Attendance Report API
// @version 1.0.0
// @description Read-only view of one attendance report plus the attendance calculator
// @BasePath /
// @schemes http

type options struct {
	document    string
	outputDir   string
	pdf         bool
	inspect     bool
	serve       bool
	metricsFile string
	rulesFile   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		return 2
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}
	defer logr.Sync() //nolint:errcheck

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(stdout, "\n%s\nSTUDENT ATTENDANCE CALCULATOR\n%s\n\n", rule, rule)

	if _, err := os.Stat(opts.document); err != nil {
		fmt.Fprintf(stdout, "Error: File not found: %s\n\nUsage: attendance-report [flags] [document]\n", opts.document)
		return 1
	}

	fmt.Fprintf(stdout, "Processing: %s\n%s\n", filepath.Base(opts.document), rule)
	doc, err := extract.Open(opts.document, extract.Options{RowTolerance: cfg.PDF.RowTolerance, ColumnGap: cfg.PDF.ColumnGap})
	if err != nil {
		logr.Error("extraction failed", zap.String("document", opts.document), zap.Error(err))
		fmt.Fprintf(stdout, "Error processing document: %v\n", err)
		return 1
	}

	if opts.inspect {
		if err := extract.Dump(stdout, doc); err != nil {
			logr.Error("inspect failed", zap.Error(err))
			return 1
		}
		return 0
	}

	canon, err := service.BuildSubjectCanonicalizer(opts.rulesFile)
	if err != nil {
		logr.Error("subject rules unusable", zap.String("file", opts.rulesFile), zap.Error(err))
		return 1
	}

	metrics := service.NewMetricsService()
	projector := service.NewThresholdProjector(cfg.Thresholds.ProjectionCap)
	reports := service.NewReportService(service.NewRecordNormalizer(canon), projector, metrics, logr, service.ReportServiceConfig{
		TargetPct:  cfg.Thresholds.TargetPct,
		SafePct:    cfg.Thresholds.SafePct,
		WarningPct: cfg.Thresholds.WarningPct,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := reports.Build(ctx, doc)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrNoData.Code {
			fmt.Fprintln(stdout, "No attendance records found; no report generated.")
		} else {
			logr.Error("report build failed", zap.Error(err))
		}
		return 1
	}
	printSummary(stdout, report, reports)

	store, err := storage.NewLocalStorage(opts.outputDir)
	if err != nil {
		logr.Error("output directory unusable", zap.Error(err))
		return 1
	}
	exports, err := service.NewExportService(reports, store, service.ExportConfig{
		HTMLFile:       cfg.Report.HTMLFile,
		DetailCSVFile:  cfg.Report.DetailCSVFile,
		SummaryCSVFile: cfg.Report.SummaryCSVFile,
		PDFEnabled:     opts.pdf,
		PDFFile:        cfg.Report.PDFFile,
		SearchCap:      projector.Cap,
	}, logr, nil, nil, nil)
	if err != nil {
		logr.Error("export setup failed", zap.Error(err))
		return 1
	}

	if opts.serve {
		return serve(ctx, cfg, logr, metrics, reports, exports, report)
	}

	result, err := exports.WriteAll(ctx, report)
	if err != nil {
		logr.Error("writing artifacts failed", zap.Error(err))
		return 1
	}
	if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
		logr.Warn("metrics textfile not written", zap.Error(err))
	}
	snap := metrics.Snapshot()
	logr.Info("run complete",
		zap.String("run_id", report.RunID),
		zap.Uint64("rows_accepted", snap.RowsAccepted),
		zap.Uint64("rows_rejected", snap.RowsRejected),
		zap.Uint64("projection_cap_hits", snap.CapHits),
	)

	fmt.Fprintf(stdout, "\nHTML report generated: %s\n", result.HTMLPath)
	fmt.Fprintf(stdout, "Data exported to: %s\n", result.DetailCSVPath)
	fmt.Fprintf(stdout, "Summary exported to: %s\n", result.SummaryCSVPath)
	if result.PDFPath != "" {
		fmt.Fprintf(stdout, "PDF summary exported to: %s\n", result.PDFPath)
	}
	fmt.Fprintf(stdout, "\nAnalysis complete!\nOpen '%s' in your browser to view the report.\n\n", result.HTMLPath)
	return 0
}

func parseFlags(args []string, cfg *config.Config) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("attendance-report", flag.ContinueOnError)
	fs.StringVar(&opts.outputDir, "out", cfg.Report.OutputDir, "directory for generated artifacts")
	fs.BoolVar(&opts.pdf, "pdf", cfg.Report.PDFEnabled, "also write a PDF summary")
	fs.BoolVar(&opts.inspect, "inspect", false, "dump extracted pages and tables, then exit")
	fs.BoolVar(&opts.serve, "serve", false, "serve the report over HTTP instead of writing artifacts")
	fs.StringVar(&opts.metricsFile, "metrics-file", cfg.Metrics.TextfilePath, "write run metrics in Prometheus text format")
	fs.StringVar(&opts.rulesFile, "rules", cfg.Subjects.RulesFile, "YAML file with extra subject rules")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: attendance-report [flags] [document]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.document = cfg.DefaultDocument
	if fs.NArg() > 0 {
		opts.document = fs.Arg(0)
	}
	return opts, nil
}

func printSummary(w io.Writer, report *models.Report, reports *service.ReportService) {
	fmt.Fprintf(w, "Extracted %d lecture records\n", len(report.Records))
	if report.Student.Name != "" {
		fmt.Fprintf(w, "Student: %s\n", report.Student.Name)
	}
	if report.Student.ID != "" {
		fmt.Fprintf(w, "SAP ID: %s\n", report.Student.ID)
	}
	fmt.Fprintln(w)
	for _, s := range reports.Summaries(report) {
		fmt.Fprintf(w, "%-40s %3d/%-3d %6.1f%%  %s\n", s.Subject, s.Present, s.Total, s.Percentage, s.Status)
	}
	totals := report.Totals()
	fmt.Fprintf(w, "%-40s %3d/%-3d %6.1f%%\n", "Overall", totals.TotalPresent, totals.TotalLectures, totals.OverallPercentage)
}

func serve(ctx context.Context, cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, reports *service.ReportService, exports *service.ExportService, report *models.Report) int {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	page, err := exports.RenderHTML(report)
	if err != nil {
		logr.Error("rendering report page failed", zap.Error(err))
		return 1
	}
	calculator := service.NewCalculatorService(service.NewThresholdProjector(cfg.Thresholds.ProjectionCap), nil, metrics, logr, cfg.Thresholds.TargetPct)
	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
	}, logr, metrics, handler.NewReportHandler(report, page, reports, calculator))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "run_id", report.RunID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
		return 1
	}
	logr.Info("server stopped")
	return 0
}
