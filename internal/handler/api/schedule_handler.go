package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"companysite/internal/dashboard"
	"companysite/internal/export"
)

// ScheduleHandler serves the schedules dashboard.
type ScheduleHandler struct {
	views  *dashboard.Service
	now    Clock
	logger *zap.Logger
}

func NewScheduleHandler(views *dashboard.Service, now Clock, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{views: views, now: now, logger: logger}
}

// List handles GET /api/schedules. Without parameters it shows every
// schedule, as the dashboard does on first load.
func (h *ScheduleHandler) List(c echo.Context) error {
	return h.respond(c, msgSuccessful)
}

// Refresh handles POST /api/schedules/refresh
func (h *ScheduleHandler) Refresh(c echo.Context) error {
	return h.respond(c, msgRefreshed)
}

func (h *ScheduleHandler) respond(c echo.Context, msg string) error {
	view, ok := h.load(c)
	if !ok {
		return unavailableResponse(c)
	}
	return successResponse(c, msg, view)
}

// Export handles POST /api/schedules/export. The workbook holds the same
// rows the dashboard shows for the given todayOnly and filter.
func (h *ScheduleHandler) Export(c echo.Context) error {
	view, ok := h.load(c)
	if !ok {
		return unavailableResponse(c)
	}
	data, err := export.Schedules(view.Schedules)
	if err != nil {
		h.logger.Error("Failed to render schedules workbook", zap.Error(err))
		return unavailableResponse(c)
	}
	return workbookResponse(c, "Schedules", h.now(), data)
}

func (h *ScheduleHandler) load(c echo.Context) (dashboard.View, bool) {
	todayOnly := boolParam(c, "todayOnly", false)
	category := dashboard.ParseCategory(c.FormValue("filter"))

	view, err := h.views.Load(c.Request().Context(), todayOnly, category, h.now())
	if err != nil {
		h.logger.Error("Failed to load schedules", zap.Error(err))
		return dashboard.View{}, false
	}
	return view, true
}
