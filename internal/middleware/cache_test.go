package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-currency-api/internal/config"
)

func ctxFor(e *echo.Echo, target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/countries")
	return c
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	e := echo.New()
	a := cacheKey("cache", ctxFor(e, "/countries?sort=gdp_desc"))
	b := cacheKey("cache", ctxFor(e, "/countries?sort=gdp_asc"))
	c := cacheKey("cache", ctxFor(e, "/countries?sort=gdp_desc"))

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.Contains(t, a, "cache:")
}

func TestResponseCacheDisabledWithoutRedis(t *testing.T) {
	mw := NewResponseCache(config.CacheConfig{Enabled: true}, nil)

	e := echo.New()
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/countries", nil), rec)
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"), "disabled cache must not annotate responses")
}

func TestCacheInvalidatorDisabledWithoutRedis(t *testing.T) {
	mw := NewCacheInvalidator(config.CacheConfig{Enabled: true, Prefix: "cache"}, nil)

	e := echo.New()
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/countries/France", nil), rec)
	require.NoError(t, h(c))
	assert.True(t, called)
}

func TestCacheInvalidatorPropagatesHandlerError(t *testing.T) {
	mw := NewCacheInvalidator(config.CacheConfig{Enabled: true, Prefix: "cache"}, nil)

	e := echo.New()
	want := echo.NewHTTPError(http.StatusNotFound, "Country not found")
	h := mw(func(c echo.Context) error { return want })

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/countries/Atlantis", nil), rec)
	assert.Equal(t, want, h(c))
}

func TestRefreshLimiterDisabledWithoutRedis(t *testing.T) {
	mw := NewRefreshLimiter(config.RateLimitConfig{Enabled: true, Limit: 1}, nil)

	e := echo.New()
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/countries/refresh", nil), rec)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestIsImagePath(t *testing.T) {
	assert.True(t, isImagePath("/countries/image"))
	assert.False(t, isImagePath("/countries"))
	assert.False(t, isImagePath("/countries/:name"))
}
