package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/noah-isme/attendance-report/internal/models"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// HTMLReport is everything the HTML page shows. Values are precomputed; the template only formats.
type HTMLReport struct {
	Student     models.StudentInfo
	Totals      models.ReportTotals
	Subjects    []models.SubjectSummary
	TargetPct   float64
	SearchCap   int
	GeneratedAt time.Time
}

// HTMLExporter renders the self-contained report page.
type HTMLExporter struct {
	tmpl *template.Template
}

// NewHTMLExporter parses the embedded template.
func NewHTMLExporter() (*HTMLExporter, error) {
	funcMap := template.FuncMap{
		"pct1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"target": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"orNA": func(v string) string {
			if v == "" {
				return "N/A"
			}
			return v
		},
		"subjectID": func(i int) string { return fmt.Sprintf("subject_%d", i) },
		"stamp":     func(t time.Time) string { return t.Format("January 02, 2006 at 03:04 PM") },
	}
	tmpl, err := template.New("report.html.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLExporter{tmpl: tmpl}, nil
}

// Render executes the template.
func (e *HTMLExporter) Render(data HTMLReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := e.tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
