package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

const noResponse = "Sorry, no response."

// Generator produces the next model message for a conversation.
type Generator interface {
	Generate(ctx context.Context, history []entities.ChatMessage) (string, error)
}

type ChatService struct {
	generator Generator
	history   *storage.ChatStorage
}

func NewChatService(generator Generator, history *storage.ChatStorage) *ChatService {
	return &ChatService{
		generator: generator,
		history:   history,
	}
}

// Ask sends text with the user's recent history and records the reply.
// A failed call leaves the history as it was before.
func (s *ChatService) Ask(ctx context.Context, userID int64, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}

	history := s.history.Append(userID, entities.ChatMessage{Role: entities.RoleUser, Text: text})

	reply, err := s.generator.Generate(ctx, history)
	if err != nil {
		s.history.DropLast(userID)
		return "", fmt.Errorf("generate reply: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = noResponse
	}

	s.history.Append(userID, entities.ChatMessage{Role: entities.RoleModel, Text: reply})
	return reply, nil
}

func (s *ChatService) Reset(userID int64) {
	s.history.Reset(userID)
}
