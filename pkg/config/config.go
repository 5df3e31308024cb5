package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env             string
	Port            int
	APIPrefix       string
	DefaultDocument string

	CORS       CORSConfig
	Log        LogConfig
	Report     ReportConfig
	Thresholds ThresholdConfig
	Subjects   SubjectConfig
	Metrics    MetricsConfig
	PDF        PDFConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ReportConfig names the artifacts written at the end of a run.
type ReportConfig struct {
	OutputDir      string
	HTMLFile       string
	DetailCSVFile  string
	SummaryCSVFile string
	PDFEnabled     bool
	PDFFile        string
}

// ThresholdConfig holds the two independent threshold sets: the good-standing target used by
// projections and the summary status bands.
type ThresholdConfig struct {
	TargetPct     float64
	ProjectionCap int
	SafePct       float64
	WarningPct    float64
}

// SubjectConfig points at optional extra canonicalization rules.
type SubjectConfig struct {
	RulesFile string
}

// MetricsConfig controls where run metrics are dumped for a textfile collector.
type MetricsConfig struct {
	TextfilePath string
}

// PDFConfig tunes how text runs are grouped into table rows and cells.
type PDFConfig struct {
	RowTolerance float64
	ColumnGap    float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.DefaultDocument = v.GetString("DEFAULT_DOCUMENT")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Report = ReportConfig{
		OutputDir:      v.GetString("REPORT_OUTPUT_DIR"),
		HTMLFile:       v.GetString("REPORT_HTML_FILE"),
		DetailCSVFile:  v.GetString("REPORT_DETAIL_CSV_FILE"),
		SummaryCSVFile: v.GetString("REPORT_SUMMARY_CSV_FILE"),
		PDFEnabled:     v.GetBool("REPORT_PDF_ENABLED"),
		PDFFile:        v.GetString("REPORT_PDF_FILE"),
	}

	cfg.Thresholds = ThresholdConfig{
		TargetPct:     positiveFloat(v.GetFloat64("ATTENDANCE_TARGET_PCT"), 80),
		ProjectionCap: positiveInt(v.GetInt("PROJECTION_CAP"), 100),
		SafePct:       positiveFloat(v.GetFloat64("STATUS_SAFE_PCT"), 75),
		WarningPct:    positiveFloat(v.GetFloat64("STATUS_WARNING_PCT"), 70),
	}

	cfg.Subjects = SubjectConfig{RulesFile: v.GetString("SUBJECT_RULES_FILE")}

	cfg.Metrics = MetricsConfig{TextfilePath: v.GetString("METRICS_TEXTFILE")}

	cfg.PDF = PDFConfig{
		RowTolerance: positiveFloat(v.GetFloat64("PDF_ROW_TOLERANCE"), 2),
		ColumnGap:    positiveFloat(v.GetFloat64("PDF_COLUMN_GAP"), 12),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("DEFAULT_DOCUMENT", "ZSVKM_STUDENT_ATTENDANCE.pdf")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("REPORT_OUTPUT_DIR", ".")
	v.SetDefault("REPORT_HTML_FILE", "attendance_report.html")
	v.SetDefault("REPORT_DETAIL_CSV_FILE", "attendance_report.csv")
	v.SetDefault("REPORT_SUMMARY_CSV_FILE", "attendance_summary.csv")
	v.SetDefault("REPORT_PDF_ENABLED", false)
	v.SetDefault("REPORT_PDF_FILE", "attendance_summary.pdf")

	v.SetDefault("ATTENDANCE_TARGET_PCT", 80)
	v.SetDefault("PROJECTION_CAP", 100)
	v.SetDefault("STATUS_SAFE_PCT", 75)
	v.SetDefault("STATUS_WARNING_PCT", 70)

	v.SetDefault("SUBJECT_RULES_FILE", "")
	v.SetDefault("METRICS_TEXTFILE", "")

	v.SetDefault("PDF_ROW_TOLERANCE", 2)
	v.SetDefault("PDF_COLUMN_GAP", 12)
}

// isMissingFile reports whether viper failed because the explicit .env path does not exist.
// SetConfigFile bypasses ConfigFileNotFoundError and surfaces the raw fs error instead.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func positiveFloat(raw, fallback float64) float64 {
	if raw <= 0 {
		return fallback
	}
	return raw
}

func positiveInt(raw, fallback int) int {
	if raw <= 0 {
		return fallback
	}
	return raw
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
