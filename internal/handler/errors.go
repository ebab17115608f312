package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"country-currency-api/internal/external"
	"country-currency-api/internal/repository"
)

// mysqlDupEntry is the MySQL error number for a unique-constraint violation.
const mysqlDupEntry = 1062

// NewHTTPErrorHandler builds the central echo error handler. It maps the
// domain error taxonomy onto the HTTP surface and logs the full error for
// operators; anything unclassified becomes a generic 500 so internal detail
// never leaks to clients.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		log.Printf("error: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)

		var srcErr *external.SourceError
		if errors.As(err, &srcErr) {
			_ = c.JSON(http.StatusServiceUnavailable, echo.Map{
				"error":   "External data source unavailable",
				"details": srcErr.Cause,
			})
			return
		}

		if errors.Is(err, repository.ErrCountryNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "Country not found"})
			return
		}

		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDupEntry {
			_ = c.JSON(http.StatusBadRequest, echo.Map{
				"error":   "Duplicate entry",
				"details": "A country with this name already exists",
			})
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.Code {
			case http.StatusNotFound, http.StatusMethodNotAllowed:
				_ = c.JSON(http.StatusNotFound, echo.Map{"error": "Endpoint not found"})
			default:
				_ = c.JSON(httpErr.Code, echo.Map{"error": http.StatusText(httpErr.Code)})
			}
			return
		}

		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
