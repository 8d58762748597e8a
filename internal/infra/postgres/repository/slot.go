package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// SlotRepository is a storage.KV backed by the kv_slots table.
type SlotRepository struct {
	db postgres.DBTX
}

// NewSlotRepository creates a new SlotRepository with the provided database pool.
func NewSlotRepository(db postgres.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

// Migrate creates the kv_slots table if it does not exist.
func (r *SlotRepository) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create kv_slots: %w", err)
	}

	return nil
}

// Get retrieves the value stored under key.
func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_slots WHERE key = $1`

	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}

	return []byte(value), nil
}

// Set creates or overwrites the value stored under key.
func (r *SlotRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}

	return nil
}
