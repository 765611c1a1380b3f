package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okvist/rota/internal/model"
)

// SQLiteStore keeps the JSON snapshot in a single-row table. Useful where a
// bare file is awkward (shared volumes, backup tooling that speaks SQL).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed snapshot store on an open database.
// The snapshots table is expected to exist (see internal/database).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load() (*model.Dataset, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot row: %w", err)
	}

	var data model.Dataset
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &data, nil
}

func (s *SQLiteStore) Save(data *model.Dataset) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (id, data, updated_at) VALUES (1, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(raw))
	if err != nil {
		return fmt.Errorf("write snapshot row: %w", err)
	}
	return nil
}
