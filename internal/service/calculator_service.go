package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-report/internal/dto"
	"github.com/noah-isme/attendance-report/internal/models"
	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
)

// CalculatorService validates calculator requests and runs the projector.
type CalculatorService struct {
	projector *ThresholdProjector
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	targetPct float64
}

// NewCalculatorService creates a calculator. targetPct is used when a request leaves the target unset.
func NewCalculatorService(projector *ThresholdProjector, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, targetPct float64) *CalculatorService {
	if projector == nil {
		projector = NewThresholdProjector(DefaultProjectionCap)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if targetPct <= 0 {
		targetPct = 80
	}
	return &CalculatorService{projector: projector, validator: validate, metrics: metrics, logger: logger, targetPct: targetPct}
}

// Project answers a free-form calculator request.
func (s *CalculatorService) Project(req dto.ProjectionRequest) (*models.Projection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid projection payload")
	}
	target := req.TargetPct
	if target == 0 {
		target = s.targetPct
	}
	proj, err := s.projector.Project(req.Present, req.Total, target, req.TotalPlanned)
	if err != nil {
		return nil, err
	}
	if !proj.Achievable {
		s.metrics.ObserveProjectionCapHit()
		s.logger.Debug("projection target unreachable within cap", zap.Int("present", req.Present), zap.Int("total", req.Total), zap.Float64("target", target))
	}
	return &proj, nil
}

// ProjectSubject runs the calculator for an aggregated subject.
func (s *CalculatorService) ProjectSubject(stats *models.SubjectStats, query dto.SubjectProjectionQuery) (*models.Projection, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid projection query")
	}
	return s.Project(dto.ProjectionRequest{
		Present:      stats.Present,
		Total:        stats.Total,
		TotalPlanned: query.Planned,
		TargetPct:    query.TargetPct,
	})
}
