package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-report/internal/middleware"
	"github.com/noah-isme/attendance-report/internal/service"
	"github.com/noah-isme/attendance-report/pkg/logger"
	corsmiddleware "github.com/noah-isme/attendance-report/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/attendance-report/pkg/middleware/requestid"
)

// RouterConfig controls the optional surfaces of the local server.
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
}

// NewRouter wires middleware and routes for the report server.
func NewRouter(cfg RouterConfig, logr *zap.Logger, metrics *service.MetricsService, reports *ReportHandler) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	metricsHandler := NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/report", reports.Page)

	api := r.Group(cfg.APIPrefix)
	api.GET("/report", reports.Report)
	api.GET("/subjects", reports.Subjects)
	api.GET("/subjects/:subject/projection", reports.SubjectProjection)
	api.POST("/projection", reports.Projection)

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}
