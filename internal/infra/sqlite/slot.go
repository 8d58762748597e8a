package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// Open connects to the database file at path, creating its directory,
// and ensures the kv_slots table exists.
func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv_slots: %w", err)
	}

	return db, nil
}

type slotRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// SlotStore is a storage.KV backed by the kv_slots table.
type SlotStore struct {
	db *sqlx.DB
}

func NewSlotStore(db *sqlx.DB) *SlotStore {
	return &SlotStore{db: db}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row slotRow
	err := s.db.GetContext(ctx, &row, `SELECT key, value FROM kv_slots WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return []byte(row.Value), nil
}

func (s *SlotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (:key, :value, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, slotRow{Key: key, Value: string(value)})
	if err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}
	return nil
}
