package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"companysite/internal/models"
)

func TestBoolParam(t *testing.T) {
	e := echo.New()
	cases := []struct {
		query string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"flag=false", true, false},
		{"flag=1", false, true},
		{"flag=on", false, true},
		{"flag=maybe", true, true},
	}
	for _, tc := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil), httptest.NewRecorder())
		assert.Equal(t, tc.want, boolParam(c, "flag", tc.def), tc.query)
	}
}

func TestBuildAccessRequest(t *testing.T) {
	req, msg := buildAccessRequest(models.AccessRequestInput{
		RequestType:    " r ",
		YourName:       "  Alice ",
		EmployeeName:   `Bob<iframe src=x>`,
		EmployeeID:     "E1",
		RequestDetails: `<a onclick="steal()">remove all</a>`,
	})
	assert.Empty(t, msg)
	assert.Equal(t, models.AccessRequestRemove, req.RequestType)
	assert.Equal(t, "Alice", req.RequestorName)
	assert.NotContains(t, req.UserName, "<iframe")
	assert.NotContains(t, req.RequestDetails, "onclick=")

	_, msg = buildAccessRequest(models.AccessRequestInput{RequestType: "A", YourName: "Alice"})
	assert.Equal(t, "employeeName is required", msg)
}
