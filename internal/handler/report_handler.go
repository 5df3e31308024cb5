package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-report/internal/dto"
	"github.com/noah-isme/attendance-report/internal/models"
	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
	"github.com/noah-isme/attendance-report/pkg/response"
)

type reportReader interface {
	Summaries(report *models.Report) []models.SubjectSummary
	Subject(report *models.Report, name string) (*models.SubjectStats, error)
	FindSubjects(report *models.Report, query string) []string
}

type projectionCalculator interface {
	Project(req dto.ProjectionRequest) (*models.Projection, error)
	ProjectSubject(stats *models.SubjectStats, query dto.SubjectProjectionQuery) (*models.Projection, error)
}

// ReportHandler serves one report built at startup. The report is never mutated after construction.
type ReportHandler struct {
	report     *models.Report
	page       []byte
	reports    reportReader
	calculator projectionCalculator
}

// NewReportHandler constructs handler around a built report and its rendered HTML page.
func NewReportHandler(report *models.Report, page []byte, reports reportReader, calculator projectionCalculator) *ReportHandler {
	return &ReportHandler{report: report, page: page, reports: reports, calculator: calculator}
}

// Page serves the rendered HTML report.
func (h *ReportHandler) Page(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.page)
}

// Report godoc
// @Summary Attendance report
// @Tags Report
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ReportResponse}
// @Router /report [get]
func (h *ReportHandler) Report(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.ReportResponse{
		RunID:       h.report.RunID,
		Source:      h.report.Source,
		Student:     h.report.Student,
		Totals:      h.report.Totals(),
		Subjects:    h.reports.Summaries(h.report),
		GeneratedAt: h.report.GeneratedAt.UTC().Format(time.RFC3339),
	})
}

// Subjects godoc
// @Summary Search subjects
// @Tags Report
// @Produce json
// @Param q query string false "Loose subject query"
// @Success 200 {object} response.Envelope{data=dto.SubjectSearchResponse}
// @Router /subjects [get]
func (h *ReportHandler) Subjects(c *gin.Context) {
	query := c.Query("q")
	matches := h.reports.FindSubjects(h.report, query)
	response.JSON(c, http.StatusOK, dto.SubjectSearchResponse{Query: query, Subjects: matches}, map[string]interface{}{"count": len(matches)})
}

// SubjectProjection godoc
// @Summary Projection for one subject
// @Tags Projection
// @Produce json
// @Param subject path string true "Subject name"
// @Param planned query int false "Total planned lectures"
// @Param target query number false "Target percentage"
// @Success 200 {object} response.Envelope{data=dto.SubjectProjectionResponse}
// @Failure 404 {object} response.Envelope
// @Router /subjects/{subject}/projection [get]
func (h *ReportHandler) SubjectProjection(c *gin.Context) {
	stats, err := h.reports.Subject(h.report, c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.SubjectProjectionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	proj, err := h.calculator.ProjectSubject(stats, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SubjectProjectionResponse{Subject: stats.Subject, Projection: *proj})
}

// Projection godoc
// @Summary Free-form attendance calculator
// @Tags Projection
// @Accept json
// @Produce json
// @Param payload body dto.ProjectionRequest true "Calculator input"
// @Success 200 {object} response.Envelope{data=models.Projection}
// @Failure 400 {object} response.Envelope
// @Router /projection [post]
func (h *ReportHandler) Projection(c *gin.Context) {
	var req dto.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	proj, err := h.calculator.Project(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proj)
}
