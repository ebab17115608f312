// Package router wires the HTTP surface onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"country-currency-api/internal/handler"
)

// RegisterRoutes registers every endpoint of the API. Static segments win
// over the :name parameter in Echo's router, so /countries/refresh and
// /countries/image are never captured as country names.
func RegisterRoutes(e *echo.Echo, countries *handler.CountryHandler, status *handler.StatusHandler, refreshLimiter, cacheInvalidator echo.MiddlewareFunc) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET("/status", status.Get)

	g := e.Group("/countries")
	g.POST("/refresh", countries.Refresh, refreshLimiter, cacheInvalidator)
	g.GET("", countries.List)
	g.GET("/image", countries.Image)
	g.GET("/:name", countries.GetByName)
	g.DELETE("/:name", countries.Delete, cacheInvalidator)
}
