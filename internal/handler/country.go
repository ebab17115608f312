// Package handler exposes the HTTP handlers of the API. Handlers stay
// thin: query sanitization, repository or engine calls, and translation of
// domain errors into JSON responses.
package handler

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	"country-currency-api/internal/repository"
	"country-currency-api/internal/service"
)

// CountryHandler serves every /countries route. ImagePath is the well-known
// location of the summary artifact.
type CountryHandler struct {
	Repo      *repository.CountryRepo
	Refresher *service.Refresher
	ImagePath string
}

// Refresh runs one reconciliation cycle. Source failures bubble up to the
// central error handler, which maps them to 503.
func (h *CountryHandler) Refresh(c echo.Context) error {
	summary, err := h.Refresher.Refresh(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// List returns all countries matching the region, currency and sort query
// parameters. Unrecognized sort keys are ignored.
func (h *CountryHandler) List(c echo.Context) error {
	countries, err := h.Repo.List(c.Request().Context(), sanitizeFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countries)
}

// GetByName returns a single country matched case-insensitively.
func (h *CountryHandler) GetByName(c echo.Context) error {
	country, err := h.Repo.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Country not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, country)
}

// Delete removes a single country matched case-insensitively.
func (h *CountryHandler) Delete(c echo.Context) error {
	err := h.Repo.DeleteByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Country not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Country deleted successfully"})
}

// Image serves the summary artifact, or 404 when no refresh has generated
// one yet.
func (h *CountryHandler) Image(c echo.Context) error {
	if _, err := os.Stat(h.ImagePath); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Summary image not found"})
	}
	return c.File(h.ImagePath)
}

// sanitizeFilter trims the region, upper-cases the currency code and keeps
// the sort key as-is; the repository ignores keys outside its whitelist.
func sanitizeFilter(c echo.Context) repository.Filter {
	return repository.Filter{
		Region:   strings.TrimSpace(c.QueryParam("region")),
		Currency: strings.ToUpper(strings.TrimSpace(c.QueryParam("currency"))),
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
	}
}
