package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"country-currency-api/internal/model"
)

// Filter narrows and orders a country listing. Zero values mean "no
// constraint"; an empty or unrecognized Sort falls back to name ascending.
type Filter struct {
	Region   string
	Currency string
	Sort     string
}

// sortClauses whitelists the supported sort keys. Anything not present here
// is ignored rather than rejected.
var sortClauses = map[string]string{
	"gdp_desc":        " ORDER BY estimated_gdp DESC",
	"gdp_asc":         " ORDER BY estimated_gdp ASC",
	"population_desc": " ORDER BY population DESC",
	"population_asc":  " ORDER BY population ASC",
	"name_asc":        " ORDER BY name ASC",
	"name_desc":       " ORDER BY name DESC",
}

const countryColumns = "id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at, created_at"

// CountryRepo encapsulates all database queries over the countries table.
// It depends on a sql.DB pool injected at construction, which keeps it
// swappable for a mock in tests.
type CountryRepo struct {
	db *sql.DB
}

// NewCountryRepo constructs a CountryRepo with the provided DB handle.
func NewCountryRepo(db *sql.DB) *CountryRepo {
	return &CountryRepo{db: db}
}

// List returns all countries matching the filter. Region and currency are
// exact matches; ordering defaults to name ascending.
func (r *CountryRepo) List(ctx context.Context, f Filter) ([]model.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries WHERE 1=1"
	args := []any{}
	if f.Region != "" {
		query += " AND region = ?"
		args = append(args, f.Region)
	}
	if f.Currency != "" {
		query += " AND currency_code = ?"
		args = append(args, f.Currency)
	}
	if clause, ok := sortClauses[f.Sort]; ok {
		query += clause
	} else {
		query += " ORDER BY name ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Country, 0)
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByName fetches one country by case-insensitive exact name match. It
// returns ErrCountryNotFound when no row matches.
func (r *CountryRepo) GetByName(ctx context.Context, name string) (*model.Country, error) {
	const q = "SELECT " + countryColumns + " FROM countries WHERE LOWER(name) = LOWER(?)"
	row := r.db.QueryRowContext(ctx, q, name)
	c, err := scanCountry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteByName removes one country by case-insensitive name match and
// returns ErrCountryNotFound when nothing was deleted.
func (r *CountryRepo) DeleteByName(ctx context.Context, name string) error {
	const q = "DELETE FROM countries WHERE LOWER(name) = LOWER(?)"
	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCountryNotFound
	}
	return nil
}

// Count returns the total number of stored countries.
func (r *CountryRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM countries").Scan(&total)
	return total, err
}

// TopByGDP returns up to limit countries with the highest non-null
// estimated GDP, descending.
func (r *CountryRepo) TopByGDP(ctx context.Context, limit int) ([]model.TopCountry, error) {
	const q = "SELECT name, estimated_gdp FROM countries WHERE estimated_gdp IS NOT NULL ORDER BY estimated_gdp DESC LIMIT ?"
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TopCountry, 0, limit)
	for rows.Next() {
		var tc model.TopCountry
		if err := rows.Scan(&tc.Name, &tc.EstimatedGDP); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertTx writes one country inside the caller's transaction, keyed by
// case-insensitive name. An existing row keeps its id and created_at and has
// every mutable field overwritten; a new row is inserted with created_at =
// refreshedAt. The same refreshedAt is passed for every row of a refresh so
// the whole batch carries one snapshot timestamp.
func (r *CountryRepo) UpsertTx(ctx context.Context, tx *sql.Tx, c *model.Country, refreshedAt time.Time) error {
	var id uint64
	err := tx.QueryRowContext(ctx, "SELECT id FROM countries WHERE LOWER(name) = LOWER(?)", c.Name).Scan(&id)
	switch {
	case err == nil:
		const q = `UPDATE countries
		           SET capital = ?, region = ?, population = ?, currency_code = ?, exchange_rate = ?, estimated_gdp = ?, flag_url = ?, last_refreshed_at = ?
		           WHERE id = ?`
		_, err = tx.ExecContext(ctx, q,
			c.Capital, c.Region, c.Population, c.CurrencyCode, c.ExchangeRate, c.EstimatedGDP, c.FlagURL, refreshedAt, id)
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	case errors.Is(err, sql.ErrNoRows):
		const q = `INSERT INTO countries
		           (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at, created_at)
		           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q,
			c.Name, c.Capital, c.Region, c.Population, c.CurrencyCode, c.ExchangeRate, c.EstimatedGDP, c.FlagURL, refreshedAt, refreshedAt)
		if err != nil {
			return err
		}
		if newID, idErr := res.LastInsertId(); idErr == nil {
			c.ID = uint64(newID)
		}
		return nil
	default:
		return err
	}
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCountry(s rowScanner) (model.Country, error) {
	var (
		c         model.Country
		capital   sql.NullString
		region    sql.NullString
		code      sql.NullString
		rate      sql.NullFloat64
		gdp       sql.NullFloat64
		flag      sql.NullString
		refreshed sql.NullTime
		created   sql.NullTime
	)
	if err := s.Scan(&c.ID, &c.Name, &capital, &region, &c.Population, &code, &rate, &gdp, &flag, &refreshed, &created); err != nil {
		return model.Country{}, err
	}
	if capital.Valid {
		c.Capital = &capital.String
	}
	if region.Valid {
		c.Region = &region.String
	}
	if code.Valid {
		c.CurrencyCode = &code.String
	}
	if rate.Valid {
		c.ExchangeRate = &rate.Float64
	}
	if gdp.Valid {
		c.EstimatedGDP = &gdp.Float64
	}
	if flag.Valid {
		c.FlagURL = &flag.String
	}
	if refreshed.Valid {
		c.LastRefreshedAt = &refreshed.Time
	}
	if created.Valid {
		c.CreatedAt = &created.Time
	}
	return c, nil
}
