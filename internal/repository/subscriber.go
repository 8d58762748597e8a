package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

const subscribersKey = "@tips:subscribers"

// SubscriberRepository keeps the chats subscribed to the daily tip as a
// single sorted JSON array in a KV.
type SubscriberRepository struct {
	mu   sync.Mutex
	slot *storage.Slot
}

func NewSubscriberRepository(kv storage.KV) *SubscriberRepository {
	return &SubscriberRepository{slot: storage.NewSlot(kv, subscribersKey)}
}

func (r *SubscriberRepository) Add(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.read(ctx)
	if err != nil {
		return err
	}

	i, found := slices.BinarySearch(ids, chatID)
	if found {
		return nil
	}

	return r.write(ctx, slices.Insert(ids, i, chatID))
}

func (r *SubscriberRepository) Remove(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.read(ctx)
	if err != nil {
		return err
	}

	i, found := slices.BinarySearch(ids, chatID)
	if !found {
		return nil
	}

	return r.write(ctx, slices.Delete(ids, i, i+1))
}

func (r *SubscriberRepository) List(ctx context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read(ctx)
}

func (r *SubscriberRepository) Contains(ctx context.Context, chatID int64) (bool, error) {
	ids, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(ids, chatID)
	return found, nil
}

func (r *SubscriberRepository) read(ctx context.Context) ([]int64, error) {
	data, err := r.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read subscribers: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	slices.Sort(ids)

	return ids, nil
}

func (r *SubscriberRepository) write(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode subscribers: %w", err)
	}

	if err := r.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("write subscribers: %w", err)
	}

	return nil
}
