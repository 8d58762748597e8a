package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// SlotStore is a storage.KV over plain Redis strings without expiry.
type SlotStore struct {
	client goredis.Cmdable
}

func NewSlotStore(client goredis.Cmdable) *SlotStore {
	return &SlotStore{client: client}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return value, nil
}

func (s *SlotStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}
	return nil
}
