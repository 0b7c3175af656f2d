package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMiddleware(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/finance/kpis", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Middleware()(handler)(c)
	require.NoError(t, err)
	return rec
}

func TestMiddlewarePassesThroughSuccess(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareValidationError(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return ValidationError("invalid date format").WithField("from", "not-a-date")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid date format", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "not-a-date", resp.Context["from"])
}

func TestMiddlewareWrapsPlainErrors(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return assert.AnError
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeInternal, resp.Type)
}

func TestMiddlewareKeepsEchoHTTPErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Middleware()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
