package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

var (
	ErrPersistence = errors.New("favorites were not persisted")
	ErrNotLoaded   = errors.New("favorites are not loaded")
)

// FavoritesSlot is the durable location holding the serialized favorites.
type FavoritesSlot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, value []byte) error
}

// FavoritesStore is a deduplicated, insertion-ordered list of favorites
// mirrored to a slot on every mutation. The whole list is rewritten each
// time, which only suits small user-curated collections.
//
// The store is safe for concurrent use: a mutation holds the lock until its
// write returns, so at most one write is in flight and later callers queue.
// A failed write is reported with ErrPersistence and the in-memory change
// is kept; the next mutation writes the full list again.
type FavoritesStore struct {
	slot   FavoritesSlot
	logger *zap.Logger

	mu      sync.Mutex
	loaded  bool
	entries []entities.FavoriteEntry
}

// NewFavoritesStore creates a store in the not loaded state.
func NewFavoritesStore(slot FavoritesSlot, logger *zap.Logger) *FavoritesStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesStore{slot: slot, logger: logger}
}

// Load reads the slot. A missing or malformed payload yields an empty store
// and is only logged. Any other read error leaves the store not loaded and
// is returned wrapped in ErrNotLoaded, so a later Load can retry.
func (s *FavoritesStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return err
	}

	s.entries = entries
	s.loaded = true
	return nil
}

func (s *FavoritesStore) read(ctx context.Context) ([]entities.FavoriteEntry, error) {
	data, err := s.slot.Read(ctx)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to read favorites", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}

	var stored []entities.FavoriteEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("malformed favorites payload, starting empty", zap.Error(err))
		return nil, nil
	}

	// Drop entries that would break the identity invariant.
	entries := make([]entities.FavoriteEntry, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, e := range stored {
		if e.Validate() != nil {
			continue
		}
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}
		entries = append(entries, e)
	}

	return entries, nil
}

// Add appends entry unless an entry with the same identity key exists,
// in which case it is a no-op and nothing is written.
func (s *FavoritesStore) Add(ctx context.Context, entry entities.FavoriteEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}
	if s.indexOf(entry.Key()) >= 0 {
		return nil
	}

	s.entries = append(s.entries, entry)
	return s.persist(ctx)
}

// Remove deletes the entry matching word's identity key, if any, and persists.
func (s *FavoritesStore) Remove(ctx context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	if i := s.indexOf(entities.FavoriteKey(word)); i >= 0 {
		s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	}
	return s.persist(ctx)
}

// Clear empties the store and persists the empty list.
func (s *FavoritesStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	s.entries = nil
	return s.persist(ctx)
}

// Contains reports whether an entry with word's identity key exists.
func (s *FavoritesStore) Contains(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOf(entities.FavoriteKey(word)) >= 0
}

// Entries returns a copy of the entries in insertion order.
func (s *FavoritesStore) Entries() []entities.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil
	}
	return append([]entities.FavoriteEntry{}, s.entries...)
}

func (s *FavoritesStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *FavoritesStore) indexOf(key string) int {
	for i, e := range s.entries {
		if e.Key() == key {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held.
func (s *FavoritesStore) persist(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []entities.FavoriteEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}

	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Error("failed to persist favorites",
			zap.Int("entries", len(entries)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}
