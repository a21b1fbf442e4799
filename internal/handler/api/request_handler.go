package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"companysite/internal/export"
	"companysite/internal/models"
	"companysite/internal/pkg/utils"
)

// Form defaults shown before the user picks anything.
const (
	defaultChangeRequestType = "chargeable"
	defaultAccessRequestType = models.AccessRequestAdd
)

// RequestHandler serves the report-change and access-change forms and the
// submitted access requests.
type RequestHandler struct {
	repos  *Repos
	now    Clock
	logger *zap.Logger
}

func NewRequestHandler(repos *Repos, now Clock, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{repos: repos, now: now, logger: logger}
}

// ChangeForm handles GET /api/report-change/form
func (h *RequestHandler) ChangeForm(c echo.Context) error {
	ctx := c.Request().Context()

	authorizers, err := h.repos.Company.FetchAuthorizers(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch authorizers", zap.Error(err))
		return unavailableResponse(c)
	}
	companies, err := h.repos.Company.FetchCompanies(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch companies", zap.Error(err))
		return unavailableResponse(c)
	}

	return successResponse(c, msgSuccessful, models.ChangeRequestForm{
		RequestType: defaultChangeRequestType,
		Authorizers: authorizers,
		Companies:   companies,
	})
}

// AccessForm handles GET /api/access-requests/form
func (h *RequestHandler) AccessForm(c echo.Context) error {
	users, err := h.repos.Company.FetchUsers(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to fetch users", zap.Error(err))
		return unavailableResponse(c)
	}
	return successResponse(c, msgSuccessful, models.AccessRequestForm{
		RequestType: defaultAccessRequestType,
		Users:       users,
	})
}

// Submit handles POST /api/access-requests
func (h *RequestHandler) Submit(c echo.Context) error {
	var in models.AccessRequestInput
	if err := c.Bind(&in); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	req, msg := buildAccessRequest(in)
	if msg != "" {
		return errorResponse(c, http.StatusBadRequest, msg)
	}

	if err := h.repos.AccessRequest.Submit(c.Request().Context(), req); err != nil {
		h.logger.Error("Failed to submit access request", zap.Error(err))
		return unavailableResponse(c)
	}

	h.logger.Info("Access request submitted",
		zap.Uint("id", req.ID),
		zap.String("type", req.RequestType),
		zap.String("requestor", req.RequestorName),
	)
	return successResponse(c, "Request is submitted", map[string]interface{}{"id": req.ID})
}

// buildAccessRequest validates and cleans a submitted form. A non-empty
// message means the input was rejected.
func buildAccessRequest(in models.AccessRequestInput) (*models.AccessRequest, string) {
	requestType := strings.ToUpper(strings.TrimSpace(in.RequestType))
	if requestType != models.AccessRequestAdd && requestType != models.AccessRequestRemove {
		return nil, "requestType must be A or R"
	}

	req := &models.AccessRequest{
		RequestType:    requestType,
		RequestorName:  utils.Truncate(utils.SanitizeText(in.YourName), 200),
		UserName:       utils.Truncate(utils.SanitizeText(in.EmployeeName), 200),
		UserID:         utils.Truncate(utils.SanitizeText(in.EmployeeID), 100),
		RequestDetails: utils.SanitizeText(in.RequestDetails),
	}
	if req.RequestorName == "" {
		return nil, "yourName is required"
	}
	if req.UserName == "" {
		return nil, "employeeName is required"
	}
	return req, ""
}

// List handles GET /api/access-requests. Outstanding requests only unless
// outstandingOnly=false.
func (h *RequestHandler) List(c echo.Context) error {
	return h.respond(c, msgSuccessful)
}

// Refresh handles POST /api/access-requests/refresh
func (h *RequestHandler) Refresh(c echo.Context) error {
	return h.respond(c, msgRefreshed)
}

func (h *RequestHandler) respond(c echo.Context, msg string) error {
	requests, err := h.repos.AccessRequest.List(c.Request().Context(), boolParam(c, "outstandingOnly", true))
	if err != nil {
		h.logger.Error("Failed to list access requests", zap.Error(err))
		return unavailableResponse(c)
	}
	return successResponse(c, msg, requests)
}

// Export handles POST /api/access-requests/export
func (h *RequestHandler) Export(c echo.Context) error {
	requests, err := h.repos.AccessRequest.List(c.Request().Context(), boolParam(c, "outstandingOnly", true))
	if err != nil {
		h.logger.Error("Failed to list access requests", zap.Error(err))
		return unavailableResponse(c)
	}
	data, err := export.AccessRequests(requests)
	if err != nil {
		h.logger.Error("Failed to render access request workbook", zap.Error(err))
		return unavailableResponse(c)
	}
	return workbookResponse(c, "AccessRequests", h.now(), data)
}
