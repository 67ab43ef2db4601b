// Package store persists user preferences that live outside the computation
// core. Today that is a single row: the flexible-box priority order.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fireplan/fireplan/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	box_order TEXT NOT NULL
);`

// SettingsStore is a sqlite-backed settings repository.
type SettingsStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the settings database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*SettingsStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settings schema: %w", err)
	}
	return &SettingsStore{db: db}, nil
}

// Close releases the database handle.
func (s *SettingsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBoxOrder stores a new priority order. Unlike reads, writes are strict:
// an order that is not a permutation of the five known keys is rejected.
func (s *SettingsStore) SaveBoxOrder(ctx context.Context, order []string) error {
	if !domain.ValidBoxOrder(order) {
		return fmt.Errorf("invalid box order %v: must be a permutation of the five flexible box keys", order)
	}
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode box order: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (id, box_order) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET box_order = excluded.box_order`, string(data))
	if err != nil {
		return fmt.Errorf("save box order: %w", err)
	}
	return nil
}

// BoxOrder loads the stored priority order. Anything malformed (a missing
// row, broken JSON, wrong keys) yields the documented default order; reads
// never fail a simulation.
func (s *SettingsStore) BoxOrder(ctx context.Context) []string {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT box_order FROM settings WHERE id = 1`).Scan(&raw)
	if err != nil {
		return domain.DefaultBoxOrder()
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return domain.DefaultBoxOrder()
	}
	return domain.NormalizeBoxOrder(order)
}
