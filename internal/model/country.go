// Package model defines the persisted entities and API response shapes of
// the service. Nullable database columns are represented as pointers so
// that JSON responses distinguish an absent value from a zero value; the
// estimated_gdp field in particular must be able to carry null ("unknown")
// as well as an explicit 0 ("no currency defined").
package model

import "time"

// Country represents one row of the countries table. Identity is the name,
// compared case-insensitively; rows are created on first sighting of a name
// and updated in place on every refresh.
type Country struct {
	ID              uint64     `json:"id"`
	Name            string     `json:"name"`
	Capital         *string    `json:"capital"`
	Region          *string    `json:"region"`
	Population      int64      `json:"population"`
	CurrencyCode    *string    `json:"currency_code"`
	ExchangeRate    *float64   `json:"exchange_rate"`
	EstimatedGDP    *float64   `json:"estimated_gdp"`
	FlagURL         *string    `json:"flag_url"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
	CreatedAt       *time.Time `json:"created_at"`
}

// TopCountry is the slim projection used for the summary artifact: name and
// a non-null estimated GDP, ordered descending by the caller.
type TopCountry struct {
	Name         string  `json:"name"`
	EstimatedGDP float64 `json:"estimated_gdp"`
}

// RefreshSummary is returned by a successful reconciliation run. Warning is
// populated when the post-commit artifact step failed; the refresh itself is
// still considered successful once the transaction committed.
type RefreshSummary struct {
	Message         string `json:"message"`
	TotalCountries  int64  `json:"total_countries"`
	LastRefreshedAt string `json:"last_refreshed_at"`
	Warning         string `json:"warning,omitempty"`
}

// Status aggregates the row count with the global refresh timestamp. The
// timestamp is nil until the first successful refresh.
type Status struct {
	TotalCountries  int64   `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}
