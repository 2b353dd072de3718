package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/server/middleware"
	"github.com/mamadbah2/dairy/pkg/metrics"
)

// Handlers groups the HTTP adapters. Notifications may be nil when WhatsApp
// is not configured.
type Handlers struct {
	Reports       *handlers.ReportHandler
	Notifications *handlers.NotificationHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(cfg config.Config, h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Server.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	auth := middleware.Auth(cfg.Auth.JWTSecret, logger)

	reports := r.Group("/reports", auth)
	reports.GET("/dashboard-summary", h.Reports.DashboardSummary)
	reports.GET("/buyer-consumption/export", h.Reports.ExportBuyerConsumptionCSV)
	reports.GET("/buyer-consumption/export.xlsx", h.Reports.ExportBuyerConsumptionXLSX)
	reports.GET("/profit-loss", h.Reports.ProfitLoss)

	if h.Notifications != nil {
		notifications := r.Group("/notifications", auth, middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin))
		notifications.POST("/outbound", h.Notifications.SendMessage)
	}

	logger.Info("router initialized", zap.Bool("metrics", cfg.Server.MetricsEnabled), zap.Bool("notifications", h.Notifications != nil))
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	c.AddExposeHeaders("Content-Disposition", "Content-Length", middleware.RequestIDHeader)
	return c
}
