package database

import (
	"context"
	"database/sql"
)

// migrations are executed in order at startup. Every statement is
// idempotent, so re-running the bootstrap against an initialized schema is
// a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		capital VARCHAR(255),
		region VARCHAR(100),
		population BIGINT NOT NULL,
		currency_code VARCHAR(10),
		exchange_rate DECIMAL(20, 6),
		estimated_gdp DECIMAL(30, 2),
		flag_url TEXT,
		last_refreshed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_region (region),
		INDEX idx_currency_code (currency_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS metadata (
		id INT AUTO_INCREMENT PRIMARY KEY,
		key_name VARCHAR(100) NOT NULL UNIQUE,
		value TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	// Seed the singleton refresh-timestamp row with a NULL value; a NULL
	// reads back as "never refreshed".
	`INSERT INTO metadata (key_name, value)
	 VALUES ('last_refreshed_at', NULL)
	 ON DUPLICATE KEY UPDATE key_name = key_name`,
}

// Migrate creates the schema and seeds the metadata singleton. The target
// database itself must already exist; it is addressed by the DSN.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
