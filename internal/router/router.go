package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"companysite/internal/config"
	"companysite/internal/dashboard"
	"companysite/internal/handler/api"
	"companysite/internal/middleware"
	"companysite/internal/repository"
	"companysite/internal/status"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	cfg *config.Config,
	dialer status.Dialer,
	deduper middleware.SubmissionDeduper,
	now api.Clock,
	logger *zap.Logger,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.SecureHeaders(cfg.Server.Development()))
	e.Use(middleware.CORS())

	// Repositories
	repos := &api.Repos{
		Schedule:      repository.NewScheduleRepository(db),
		Company:       repository.NewCompanyRepository(db),
		Report:        repository.NewReportRepository(db),
		AccessRequest: repository.NewAccessRequestRepository(db),
	}

	// Services
	views := dashboard.NewService(repos.Schedule, repos.Company)
	prober := status.NewProber(repos.Company, dialer, cfg.Status.Timeout, cfg.Status.Concurrency, logger)

	// Handlers
	reportHandler := api.NewReportHandler(repos, now, logger)
	statusHandler := api.NewDatabaseStatusHandler(prober, now, logger)
	requestHandler := api.NewRequestHandler(repos, now, logger)
	scheduleHandler := api.NewScheduleHandler(views, now, logger)

	apiGroup := e.Group("/api")

	apiGroup.GET("/reports", reportHandler.List)
	apiGroup.POST("/reports/refresh", reportHandler.Refresh)
	apiGroup.POST("/reports/export", reportHandler.Export)

	apiGroup.GET("/database-status", statusHandler.List)
	apiGroup.POST("/database-status/refresh", statusHandler.Refresh)
	apiGroup.POST("/database-status/export", statusHandler.Export)

	apiGroup.GET("/report-change/form", requestHandler.ChangeForm)

	apiGroup.GET("/access-requests/form", requestHandler.AccessForm)
	apiGroup.POST("/access-requests", requestHandler.Submit, middleware.AccessRequestDedup(deduper))
	apiGroup.GET("/access-requests", requestHandler.List)
	apiGroup.POST("/access-requests/refresh", requestHandler.Refresh)
	apiGroup.POST("/access-requests/export", requestHandler.Export)

	apiGroup.GET("/schedules", scheduleHandler.List)
	apiGroup.POST("/schedules/refresh", scheduleHandler.Refresh)
	apiGroup.POST("/schedules/export", scheduleHandler.Export)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
