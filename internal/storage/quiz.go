package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

type quizEntry struct {
	session   *entities.QuizSession
	touchedAt time.Time
}

// QuizStorage keeps the active quiz session of each user in memory.
type QuizStorage struct {
	mu       sync.Mutex
	sessions map[int64]*quizEntry
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]*quizEntry),
	}
}

// Store replaces the session of the given user.
func (s *QuizStorage) Store(userID int64, session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &quizEntry{session: session, touchedAt: time.Now()}
}

// With runs fn on the user's session while holding the storage lock.
// It reports false when the user has no session.
func (s *QuizStorage) With(userID int64, fn func(*entities.QuizSession) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[userID]
	if !ok {
		return false, nil
	}
	e.touchedAt = time.Now()
	return true, fn(e.session)
}

// Delete removes the session of the given user.
func (s *QuizStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Prune drops sessions not used since before and returns how many were dropped.
func (s *QuizStorage) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.sessions {
		if e.touchedAt.Before(before) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
