package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"country-currency-api/internal/model"
	"country-currency-api/internal/repository"
)

// StatusHandler serves the aggregate /status endpoint.
type StatusHandler struct {
	Countries *repository.CountryRepo
	Metadata  *repository.MetadataRepo
}

// Get returns the stored row count and the global refresh timestamp. Before
// the first refresh the timestamp is null and the count zero.
func (h *StatusHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.Countries.Count(ctx)
	if err != nil {
		return err
	}
	refreshedAt, err := h.Metadata.Get(ctx, repository.KeyLastRefreshedAt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Status{
		TotalCountries:  total,
		LastRefreshedAt: refreshedAt,
	})
}
