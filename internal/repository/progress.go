package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// ProgressRepository keeps each user's progress as one JSON document in a KV.
type ProgressRepository struct {
	kv storage.KV
}

func NewProgressRepository(kv storage.KV) *ProgressRepository {
	return &ProgressRepository{kv: kv}
}

func progressKey(userID int64) string {
	return fmt.Sprintf("@progress:%d", userID)
}

// Get returns the user's progress, or empty progress if none is stored.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	data, err := r.kv.Get(ctx, progressKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return &entities.UserProgress{}, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	var p entities.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}

	return &p, nil
}

func (r *ProgressRepository) Save(ctx context.Context, userID int64, p *entities.UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	if err := r.kv.Set(ctx, progressKey(userID), data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return nil
}
