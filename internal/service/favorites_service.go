package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

const favoritesKeyPrefix = "@favorites"

// FavoritesKey returns the slot key holding the favorites of a user.
func FavoritesKey(userID int64) string {
	return fmt.Sprintf("%s:%d", favoritesKeyPrefix, userID)
}

type favoritesEntry struct {
	store     *FavoritesStore
	touchedAt time.Time
}

// FavoritesService hands out one loaded FavoritesStore per user.
type FavoritesService struct {
	kv     storage.KV
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	stores map[int64]*favoritesEntry
}

func NewFavoritesService(kv storage.KV, logger *zap.Logger) *FavoritesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesService{
		kv:     kv,
		logger: logger,
		now:    time.Now,
		stores: make(map[int64]*favoritesEntry),
	}
}

// Store returns the user's store, loading it from its slot on first use.
// A store whose load failed is not kept, so the next call loads again.
func (s *FavoritesService) Store(ctx context.Context, userID int64) (*FavoritesStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.stores[userID]; ok {
		e.touchedAt = s.now()
		return e.store, nil
	}

	slot := storage.NewSlot(s.kv, FavoritesKey(userID))
	st := NewFavoritesStore(slot, s.logger.With(zap.Int64("user_id", userID)))
	if err := st.Load(ctx); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	s.stores[userID] = &favoritesEntry{store: st, touchedAt: s.now()}

	return st, nil
}

// Prune drops stores not used since before. Their content stays in the slot
// and is loaded again on the next access.
func (s *FavoritesService) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for userID, e := range s.stores {
		if e.touchedAt.Before(before) {
			delete(s.stores, userID)
			n++
		}
	}
	return n
}

func (s *FavoritesService) Add(ctx context.Context, userID int64, entry entities.FavoriteEntry) error {
	st, err := s.Store(ctx, userID)
	if err != nil {
		return err
	}
	return st.Add(ctx, entry)
}

func (s *FavoritesService) Remove(ctx context.Context, userID int64, word string) error {
	st, err := s.Store(ctx, userID)
	if err != nil {
		return err
	}
	return st.Remove(ctx, word)
}

func (s *FavoritesService) Clear(ctx context.Context, userID int64) error {
	st, err := s.Store(ctx, userID)
	if err != nil {
		return err
	}
	return st.Clear(ctx)
}

// Contains reports false when the favorites cannot be loaded.
func (s *FavoritesService) Contains(ctx context.Context, userID int64, word string) bool {
	st, err := s.Store(ctx, userID)
	if err != nil {
		return false
	}
	return st.Contains(word)
}

// List returns nil when the favorites cannot be loaded.
func (s *FavoritesService) List(ctx context.Context, userID int64) []entities.FavoriteEntry {
	st, err := s.Store(ctx, userID)
	if err != nil {
		return nil
	}
	return st.Entries()
}
