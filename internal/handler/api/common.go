package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"companysite/internal/export"
	"companysite/internal/models"
	"companysite/internal/repository"
)

const (
	msgSuccessful  = "Successful"
	msgRefreshed   = "Table has been refreshed"
	msgUnavailable = "Service temporarily unavailable"
)

// Response helpers producing the {success, message, data} envelope.
func successResponse(c echo.Context, msg string, data interface{}) error {
	return c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func errorResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, models.APIResponse{
		Success: false,
		Message: msg,
	})
}

// unavailableResponse hides the storage error from the caller; handlers log
// it before calling this.
func unavailableResponse(c echo.Context) error {
	return errorResponse(c, http.StatusServiceUnavailable, msgUnavailable)
}

// workbookResponse sends an xlsx attachment named after kind and at.
func workbookResponse(c echo.Context, kind string, at time.Time, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.FileName(kind, at)+`"`)
	return c.Blob(http.StatusOK, export.ContentType, data)
}

// boolParam reads a query or form flag. Missing or unparsable values give def.
func boolParam(c echo.Context, name string, def bool) bool {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		// HTML checkboxes post "on".
		if strings.EqualFold(raw, "on") {
			return true
		}
		return def
	}
	return v
}

// Clock returns the current time in the dashboard's time zone.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// Repos bundles all repositories needed by API handlers.
type Repos struct {
	Schedule      *repository.ScheduleRepository
	Company       *repository.CompanyRepository
	Report        *repository.ReportRepository
	AccessRequest *repository.AccessRequestRepository
}
