package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrInvalidDailyTime = errors.New("invalid daily time, expected HH:MM")

type TipRepository interface {
	GetRandom(ctx context.Context) (string, error)
}

type SubscriberRepository interface {
	Add(ctx context.Context, chatID int64) error
	Remove(ctx context.Context, chatID int64) error
	List(ctx context.Context) ([]int64, error)
}

// TipNotifier delivers a tip to a chat.
type TipNotifier interface {
	SendTip(chatID int64, tip string) error
}

// TipService serves motivational tips and broadcasts one daily to subscribers.
type TipService struct {
	tips        TipRepository
	subscribers SubscriberRepository
	notifier    TipNotifier
	logger      *zap.Logger
}

func NewTipService(tips TipRepository, subscribers SubscriberRepository, logger *zap.Logger) *TipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TipService{
		tips:        tips,
		subscribers: subscribers,
		logger:      logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *TipService) SetNotifier(notifier TipNotifier) {
	s.notifier = notifier
}

func (s *TipService) Random(ctx context.Context) (string, error) {
	return s.tips.GetRandom(ctx)
}

func (s *TipService) Subscribe(ctx context.Context, chatID int64) error {
	return s.subscribers.Add(ctx, chatID)
}

func (s *TipService) Unsubscribe(ctx context.Context, chatID int64) error {
	return s.subscribers.Remove(ctx, chatID)
}

// DailySpec converts an HH:MM time into a cron spec.
func DailySpec(at string) (string, error) {
	hh, mm, ok := strings.Cut(at, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDailyTime, at)
	}

	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDailyTime, at)
	}

	return fmt.Sprintf("%d %d * * *", m, h), nil
}

// Start runs the daily broadcast until ctx is done.
func (s *TipService) Start(ctx context.Context, dailyAt string) error {
	spec, err := DailySpec(dailyAt)
	if err != nil {
		return err
	}

	c := cron.New(cron.WithLocation(time.UTC))

	_, err = c.AddFunc(spec, func() {
		s.logger.Info("cron triggered: broadcasting daily tip")
		if _, err := s.Broadcast(ctx); err != nil {
			s.logger.Error("failed to broadcast daily tip", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("tip scheduler started", zap.String("spec", spec))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("tip scheduler stopped")
	return nil
}

// Broadcast sends one random tip to every subscriber and returns how many
// deliveries succeeded.
func (s *TipService) Broadcast(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, fmt.Errorf("notifier not initialized")
	}

	chatIDs, err := s.subscribers.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list subscribers: %w", err)
	}
	if len(chatIDs) == 0 {
		return 0, nil
	}

	tip, err := s.tips.GetRandom(ctx)
	if err != nil {
		return 0, fmt.Errorf("get tip: %w", err)
	}

	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, chatID := range chatIDs {
		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			if err := s.notifier.SendTip(chatID, tip); err != nil {
				s.logger.Error("failed to send tip",
					zap.Int64("chat_id", chatID),
					zap.Error(err))
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()

	s.logger.Info("daily tip broadcast",
		zap.Int("subscribers", len(chatIDs)),
		zap.Int("sent", sent),
	)

	return sent, nil
}
