package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"companysite/internal/export"
	"companysite/internal/models"
	"companysite/internal/status"
)

// DatabaseStatusHandler reports how fresh each client database is.
type DatabaseStatusHandler struct {
	prober *status.Prober
	now    Clock
	logger *zap.Logger
}

func NewDatabaseStatusHandler(prober *status.Prober, now Clock, logger *zap.Logger) *DatabaseStatusHandler {
	return &DatabaseStatusHandler{prober: prober, now: now, logger: logger}
}

// List handles GET /api/database-status
func (h *DatabaseStatusHandler) List(c echo.Context) error {
	return h.respond(c, msgSuccessful)
}

// Refresh handles POST /api/database-status/refresh
func (h *DatabaseStatusHandler) Refresh(c echo.Context) error {
	return h.respond(c, msgRefreshed)
}

func (h *DatabaseStatusHandler) respond(c echo.Context, msg string) error {
	statuses, ok := h.check(c)
	if !ok {
		return unavailableResponse(c)
	}
	return successResponse(c, msg, statuses)
}

// Export handles POST /api/database-status/export
func (h *DatabaseStatusHandler) Export(c echo.Context) error {
	statuses, ok := h.check(c)
	if !ok {
		return unavailableResponse(c)
	}
	data, err := export.DatabaseStatuses(statuses)
	if err != nil {
		h.logger.Error("Failed to render database status workbook", zap.Error(err))
		return unavailableResponse(c)
	}
	return workbookResponse(c, "DatabaseStatus", h.now(), data)
}

func (h *DatabaseStatusHandler) check(c echo.Context) ([]models.DatabaseStatus, bool) {
	statuses, err := h.prober.Check(c.Request().Context(), h.now())
	if err != nil {
		h.logger.Error("Failed to check database status", zap.Error(err))
		return nil, false
	}
	return statuses, true
}
