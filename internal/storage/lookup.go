package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

type LookupRecord struct {
	Entry     entities.WordEntry
	FetchedAt time.Time
}

// LookupStorage remembers the last word shown to each user so callbacks
// can refer to it without carrying the word itself.
type LookupStorage struct {
	mu      sync.RWMutex
	records map[int64]LookupRecord
}

func NewLookupStorage() *LookupStorage {
	return &LookupStorage{
		records: make(map[int64]LookupRecord),
	}
}

func (s *LookupStorage) Store(userID int64, entry entities.WordEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID] = LookupRecord{
		Entry:     entry,
		FetchedAt: time.Now(),
	}
}

func (s *LookupStorage) Get(userID int64) (LookupRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	return rec, ok
}

func (s *LookupStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, userID)
}

// Prune drops records fetched before the given time.
func (s *LookupStorage) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, rec := range s.records {
		if rec.FetchedAt.Before(before) {
			delete(s.records, id)
			n++
		}
	}
	return n
}
