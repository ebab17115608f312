package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"country-currency-api/internal/external"
	"country-currency-api/internal/repository"
)

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	NewHTTPErrorHandler()(err, e.NewContext(req, rec))
	return rec
}

func TestSourceErrorMapsTo503(t *testing.T) {
	rec := invokeErrorHandler(t, &external.SourceError{Source: "countries", Cause: "timeout after 15s"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"External data source unavailable","details":"timeout after 15s"}`, rec.Body.String())
}

func TestNotFoundErrorMapsTo404(t *testing.T) {
	rec := invokeErrorHandler(t, repository.ErrCountryNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Country not found"}`, rec.Body.String())
}

func TestDuplicateEntryMapsTo400(t *testing.T) {
	rec := invokeErrorHandler(t, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'France'"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Duplicate entry","details":"A country with this name already exists"}`, rec.Body.String())
}

func TestUnmatchedRouteMapsToEndpointNotFound(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, rec.Body.String())
}

func TestUnclassifiedErrorLeaksNoDetail(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("pq: secret internal state"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestWrappedSourceErrorStillMaps(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), &external.SourceError{Source: "rates", Cause: "status 502"})
	rec := invokeErrorHandler(t, wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
