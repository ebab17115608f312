package repository

import (
	"context"
	"database/sql"
	"errors"
)

// KeyLastRefreshedAt names the singleton metadata row holding the global
// refresh timestamp. It is seeded with a NULL value at migration time and
// only ever overwritten inside a refresh transaction.
const KeyLastRefreshedAt = "last_refreshed_at"

// MetadataRepo is the accessor for the metadata key/value table. Modelling
// the singleton row behind its own repository keeps the global timestamp
// out of ambient state: readers go through Get, and only the refresh
// transaction writes through SetTx.
type MetadataRepo struct {
	db *sql.DB
}

// NewMetadataRepo constructs a MetadataRepo with the provided DB handle.
func NewMetadataRepo(db *sql.DB) *MetadataRepo {
	return &MetadataRepo{db: db}
}

// Get returns the value for a metadata key, nil when the stored value is
// NULL. A missing row yields ErrMetadataNotFound.
func (r *MetadataRepo) Get(ctx context.Context, key string) (*string, error) {
	var value sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key_name = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMetadataNotFound
		}
		return nil, err
	}
	if !value.Valid {
		return nil, nil
	}
	return &value.String, nil
}

// SetTx overwrites a metadata value inside the caller's transaction, so the
// timestamp becomes visible in the same atomic snapshot as the batch of
// country rows it describes.
func (r *MetadataRepo) SetTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	const q = "UPDATE metadata SET value = ?, updated_at = NOW() WHERE key_name = ?"
	_, err := tx.ExecContext(ctx, q, value, key)
	return err
}
