package api

import (
	"github.com/gin-gonic/gin"

	"market_dashboard/internal/config"
	"market_dashboard/internal/logger"
	"market_dashboard/internal/monitoring"
)

func SetupRouter(cfg *config.Config, log *logger.Logger, metrics *monitoring.Metrics, controller Controller) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(log.WithComponent("http")))
	r.Use(metrics.MetricsMiddleware())
	r.Use(CORSMiddleware(cfg.CORSOrigins))
	r.SetHTMLTemplate(pageTemplate)

	handler := NewHandler(cfg, controller)
	limit := RateLimiter(cfg.RefreshRatePerMin)

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", metrics.PrometheusHandler())

	r.GET("/", handler.Index)
	r.POST("/refresh", limit, handler.RefreshForm)
	r.GET("/charts/:id", handler.GetChart)

	api := r.Group("/api")
	{
		api.GET("/state", handler.GetState)
		api.GET("/layout", handler.GetLayout)
		api.GET("/summary", handler.GetSummary)
		api.POST("/refetch", limit, handler.Refetch)
	}

	return r
}
