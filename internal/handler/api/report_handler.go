package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"companysite/internal/export"
)

// ReportHandler serves the available reports catalogue.
type ReportHandler struct {
	repos  *Repos
	now    Clock
	logger *zap.Logger
}

func NewReportHandler(repos *Repos, now Clock, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{repos: repos, now: now, logger: logger}
}

// List handles GET /api/reports
func (h *ReportHandler) List(c echo.Context) error {
	return h.respond(c, msgSuccessful)
}

// Refresh handles POST /api/reports/refresh
func (h *ReportHandler) Refresh(c echo.Context) error {
	return h.respond(c, msgRefreshed)
}

func (h *ReportHandler) respond(c echo.Context, msg string) error {
	reports, err := h.repos.Report.FetchReports(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to fetch reports", zap.Error(err))
		return unavailableResponse(c)
	}
	return successResponse(c, msg, reports)
}

// Export handles POST /api/reports/export
func (h *ReportHandler) Export(c echo.Context) error {
	reports, err := h.repos.Report.FetchReports(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to fetch reports", zap.Error(err))
		return unavailableResponse(c)
	}
	data, err := export.Reports(reports)
	if err != nil {
		h.logger.Error("Failed to render reports workbook", zap.Error(err))
		return unavailableResponse(c)
	}
	return workbookResponse(c, "Reports", h.now(), data)
}
