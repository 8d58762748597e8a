package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

type conversation struct {
	messages  []entities.ChatMessage
	touchedAt time.Time
}

// ChatStorage keeps a bounded conversation history per user.
type ChatStorage struct {
	mu      sync.Mutex
	limit   int
	history map[int64]*conversation
}

// NewChatStorage creates a storage keeping at most limit messages per user.
func NewChatStorage(limit int) *ChatStorage {
	if limit < 2 {
		limit = 2
	}
	return &ChatStorage{
		limit:   limit,
		history: make(map[int64]*conversation),
	}
}

// Append adds messages to the user's history, dropping the oldest ones
// over the limit, and returns a copy of the resulting history.
func (s *ChatStorage) Append(userID int64, msgs ...entities.ChatMessage) []entities.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.history[userID]
	if !ok {
		c = &conversation{}
		s.history[userID] = c
	}

	h := append(c.messages, msgs...)
	if over := len(h) - s.limit; over > 0 {
		h = append([]entities.ChatMessage(nil), h[over:]...)
	}
	c.messages = h
	c.touchedAt = time.Now()

	return append([]entities.ChatMessage(nil), h...)
}

// DropLast removes the last message of the user's history.
func (s *ChatStorage) DropLast(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.history[userID]; ok && len(c.messages) > 0 {
		c.messages = c.messages[:len(c.messages)-1]
	}
}

func (s *ChatStorage) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.history, userID)
}

// Prune drops conversations idle since before.
func (s *ChatStorage) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, c := range s.history {
		if c.touchedAt.Before(before) {
			delete(s.history, id)
			n++
		}
	}
	return n
}
