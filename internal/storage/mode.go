package storage

import "sync"

// InputMode decides where plain text messages of a user are routed.
type InputMode string

const (
	ModeChat      InputMode = "chat"
	ModeTranslate InputMode = "translate"
	ModeQuiz      InputMode = "quiz"
)

type ModeStorage struct {
	mu    sync.RWMutex
	modes map[int64]InputMode
}

func NewModeStorage() *ModeStorage {
	return &ModeStorage{
		modes: make(map[int64]InputMode),
	}
}

func (s *ModeStorage) Set(userID int64, mode InputMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[userID] = mode
}

// Get returns the user's mode, ModeChat by default.
func (s *ModeStorage) Get(userID int64) InputMode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.modes[userID]; ok {
		return m
	}
	return ModeChat
}
