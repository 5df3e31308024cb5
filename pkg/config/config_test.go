package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, "ZSVKM_STUDENT_ATTENDANCE.pdf", cfg.DefaultDocument)
	require.Equal(t, "attendance_report.html", cfg.Report.HTMLFile)
	require.Equal(t, "attendance_report.csv", cfg.Report.DetailCSVFile)
	require.Equal(t, "attendance_summary.csv", cfg.Report.SummaryCSVFile)
	require.False(t, cfg.Report.PDFEnabled)
	require.Equal(t, 80.0, cfg.Thresholds.TargetPct)
	require.Equal(t, 100, cfg.Thresholds.ProjectionCap)
	require.Equal(t, 75.0, cfg.Thresholds.SafePct)
	require.Equal(t, 70.0, cfg.Thresholds.WarningPct)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("ATTENDANCE_TARGET_PCT", "85.5")
	t.Setenv("PROJECTION_CAP", "250")
	t.Setenv("REPORT_PDF_ENABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://127.0.0.1:3000 ,")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 85.5, cfg.Thresholds.TargetPct)
	require.Equal(t, 250, cfg.Thresholds.ProjectionCap)
	require.True(t, cfg.Report.PDFEnabled)
	require.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsNonPositiveThresholds(t *testing.T) {
	t.Setenv("PROJECTION_CAP", "-3")
	t.Setenv("STATUS_SAFE_PCT", "0")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 100, cfg.Thresholds.ProjectionCap)
	require.Equal(t, 75.0, cfg.Thresholds.SafePct)
}
