// Package queue defines the snapshot event exchanged over the message
// broker plus its publisher and the background consumer that turns events
// into the summary image.
package queue

import "country-currency-api/internal/model"

// SnapshotQueueName is the durable queue carrying refresh snapshots.
const SnapshotQueueName = "snapshot.refreshed"

// SnapshotRefreshedEvent is published after a refresh transaction commits.
// It carries everything the image renderer needs so consumers never have to
// query the primary database.
type SnapshotRefreshedEvent struct {
	TotalCountries int64              `json:"total_countries"`
	TopCountries   []model.TopCountry `json:"top_countries"`
	RefreshedAt    string             `json:"refreshed_at"`
}
