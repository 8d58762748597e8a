package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is a durable key-value store holding one opaque value per key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Slot is a single named location in a KV, read and overwritten as a whole.
type Slot struct {
	kv  KV
	key string
}

// NewSlot binds kv to key.
func NewSlot(kv KV, key string) *Slot {
	return &Slot{kv: kv, key: key}
}

func (s *Slot) Key() string { return s.key }

// Read returns the stored value or ErrKeyNotFound.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	return s.kv.Get(ctx, s.key)
}

// Write overwrites the stored value.
func (s *Slot) Write(ctx context.Context, value []byte) error {
	return s.kv.Set(ctx, s.key, value)
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string][]byte),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// FileKV stores each key in its own file under dir.
type FileKV struct {
	fs  afero.Fs
	dir string
}

// NewFileKV creates dir on fsys if needed.
func NewFileKV(fsys afero.Fs, dir string) (*FileKV, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &FileKV{fs: fsys, dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read slot %q: %w", key, err)
	}
	return data, nil
}

// Set writes to a temporary file and renames it over the old value,
// so a reader never observes a partial write.
func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := afero.WriteFile(f.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("commit slot %q: %w", key, err)
	}
	return nil
}
