// Package repository contains the data access layer, separated from HTTP
// handlers. Sentinel errors defined here let handlers translate failure
// scenarios into HTTP responses without inspecting SQL details.
package repository

import "errors"

// ErrCountryNotFound is returned when a lookup or delete matches no row.
// Handlers translate it into an HTTP 404.
var ErrCountryNotFound = errors.New("country not found")

// ErrMetadataNotFound is returned when a metadata key has no row. The
// last_refreshed_at row is seeded at migration time, so seeing this error
// normally means the schema was never initialized.
var ErrMetadataNotFound = errors.New("metadata key not found")
