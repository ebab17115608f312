package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Root is the liveness/info endpoint at GET /.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Country Currency & Exchange API",
		"version": Version,
	})
}

// Health is a plain health check for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
