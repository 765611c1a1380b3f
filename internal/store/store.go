// Package store persists the rota dataset as a single JSON snapshot.
// Two backends are provided: a plain file and a one-row SQLite table.
package store

import "github.com/okvist/rota/internal/model"

// Store loads and saves the whole dataset as one snapshot.
type Store interface {
	// Load returns the persisted dataset, or (nil, nil) when no snapshot
	// has been written yet.
	Load() (*model.Dataset, error)
	// Save rewrites the snapshot wholesale.
	Save(*model.Dataset) error
}
