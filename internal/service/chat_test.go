package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

type scriptedGenerator struct {
	replies []string
	err     error
	seen    [][]entities.ChatMessage
}

func (g *scriptedGenerator) Generate(_ context.Context, history []entities.ChatMessage) (string, error) {
	g.seen = append(g.seen, history)
	if g.err != nil {
		return "", g.err
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func TestChatAsk(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{replies: []string{"Hi there!", "   "}}
	svc := NewChatService(gen, storage.NewChatStorage(10))

	if _, err := svc.Ask(ctx, 1, "  "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	reply, err := svc.Ask(ctx, 1, "Hello")
	if err != nil || reply != "Hi there!" {
		t.Fatalf("Ask() = %q, %v", reply, err)
	}

	reply, err = svc.Ask(ctx, 1, "How do I say thanks?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if reply != noResponse {
		t.Errorf("expected fallback reply, got %q", reply)
	}

	last := gen.seen[len(gen.seen)-1]
	if len(last) != 3 || last[1].Role != entities.RoleModel || last[2].Text != "How do I say thanks?" {
		t.Errorf("expected history to be sent with the question, got %+v", last)
	}
}

func TestChatAskFailureKeepsHistory(t *testing.T) {
	ctx := context.Background()
	gen := &scriptedGenerator{err: errors.New("quota exceeded")}
	history := storage.NewChatStorage(10)
	svc := NewChatService(gen, history)

	if _, err := svc.Ask(ctx, 1, "Hello"); err == nil {
		t.Fatal("expected error")
	}
	if h := history.Append(1); len(h) != 0 {
		t.Errorf("failed question must not stay in history, got %+v", h)
	}

	svc.Reset(1)
}
