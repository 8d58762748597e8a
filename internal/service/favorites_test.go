package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// flakySlot wraps a memory slot and fails writes while failWrites is set.
type flakySlot struct {
	mu         sync.Mutex
	data       []byte
	has        bool
	failWrites bool
	readErr    error
	writes     int
	inFlight   int
	maxFlight  int
}

func (f *flakySlot) Read(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	if !f.has {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), f.data...), nil
}

func (f *flakySlot) Write(_ context.Context, value []byte) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxFlight {
		f.maxFlight = f.inFlight
	}
	fail := f.failWrites
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if fail {
		return errors.New("disk full")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = append([]byte(nil), value...)
	f.has = true
	f.writes++
	return nil
}

func (f *flakySlot) stored(t *testing.T) []entities.FavoriteEntry {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []entities.FavoriteEntry
	if err := json.Unmarshal(f.data, &entries); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	return entries
}

func loadedStore(t *testing.T, slot FavoritesSlot) *FavoritesStore {
	t.Helper()
	s := NewFavoritesStore(slot, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func run(word string) entities.FavoriteEntry {
	return entities.FavoriteEntry{
		Word:                 word,
		PrimaryDefinition:    "move at a speed faster than a walk",
		TranslatedDefinition: "दौड़ना",
		PartOfSpeech:         "verb",
	}
}

func TestFavoritesLoad(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		has     bool
		want    int
	}{
		{"missing slot", "", false, 0},
		{"malformed payload", "{not json", true, 0},
		{"wrong shape", `{"word":"run"}`, true, 0},
		{"valid payload", `[{"word":"run"},{"word":"walk"}]`, true, 2},
		{"duplicates and empty words dropped", `[{"word":"Run"},{"word":"run"},{"word":""}]`, true, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slot := &flakySlot{data: []byte(tc.payload), has: tc.has}
			s := loadedStore(t, slot)

			if got := len(s.Entries()); got != tc.want {
				t.Errorf("expected %d entries, got %d", tc.want, got)
			}
		})
	}
}

func TestFavoritesLoadReadError(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{
		data:    []byte(`[{"word":"alpha"},{"word":"beta"}]`),
		has:     true,
		readErr: errors.New("connection reset"),
	}
	s := NewFavoritesStore(slot, nil)

	if err := s.Load(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if err := s.Add(ctx, run("gamma")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Add after failed load: expected ErrNotLoaded, got %v", err)
	}
	if slot.writes != 0 {
		t.Errorf("failed load must not lead to a write, got %d", slot.writes)
	}

	slot.readErr = nil
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load() retry error = %v", err)
	}
	if !s.Contains("alpha") || !s.Contains("beta") {
		t.Errorf("expected stored favorites after retry, got %+v", s.Entries())
	}
}

func TestFavoritesNotLoaded(t *testing.T) {
	ctx := context.Background()
	s := NewFavoritesStore(&flakySlot{}, nil)

	if err := s.Add(ctx, run("run")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Add: expected ErrNotLoaded, got %v", err)
	}
	if err := s.Remove(ctx, "run"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Remove: expected ErrNotLoaded, got %v", err)
	}
	if err := s.Clear(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Clear: expected ErrNotLoaded, got %v", err)
	}
	if s.Contains("run") || s.Entries() != nil {
		t.Error("expected empty view before load")
	}
}

func TestFavoritesCaseInsensitiveContains(t *testing.T) {
	ctx := context.Background()
	s := loadedStore(t, &flakySlot{})

	if err := s.Add(ctx, run("Run")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	for _, w := range []string{"run", "RUN", "Run"} {
		if !s.Contains(w) {
			t.Errorf("expected Contains(%q) to be true", w)
		}
	}
	if s.Contains("walk") {
		t.Error("unexpected Contains(walk)")
	}
}

func TestFavoritesDedup(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	first := run("Run")
	if err := s.Add(ctx, first); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	writes := slot.writes

	dup := run("RUN")
	dup.PrimaryDefinition = "something else"
	if err := s.Add(ctx, dup); err != nil {
		t.Fatalf("Add(dup) error = %v", err)
	}

	got := s.Entries()
	if len(got) != 1 || got[0] != first {
		t.Errorf("expected original entry to be kept, got %+v", got)
	}
	if slot.writes != writes {
		t.Errorf("duplicate add must not write, writes %d -> %d", writes, slot.writes)
	}
}

func TestFavoritesAddRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	for _, w := range []string{"walk", "jump"} {
		if err := s.Add(ctx, run(w)); err != nil {
			t.Fatalf("Add(%q) error = %v", w, err)
		}
	}
	before := s.Entries()

	e := run("Sprint")
	if err := s.Add(ctx, e); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Remove(ctx, e.Word); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if got := s.Entries(); !reflect.DeepEqual(got, before) {
		t.Errorf("expected %+v after round trip, got %+v", before, got)
	}
	if got := slot.stored(t); !reflect.DeepEqual(got, before) {
		t.Errorf("expected persisted %+v, got %+v", before, got)
	}

	// Removing an absent word is a no-op on content.
	if err := s.Remove(ctx, "absent"); err != nil {
		t.Fatalf("Remove(absent) error = %v", err)
	}
	if got := s.Entries(); !reflect.DeepEqual(got, before) {
		t.Errorf("remove of absent word changed content: %+v", got)
	}
}

func TestFavoritesInsertionOrderAndReload(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	words := []string{"run", "walk", "jump", "swim"}
	for _, w := range words {
		if err := s.Add(ctx, run(w)); err != nil {
			t.Fatalf("Add(%q) error = %v", w, err)
		}
	}
	if err := s.Remove(ctx, "WALK"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	reloaded := loadedStore(t, slot)
	got := reloaded.Entries()
	want := []string{"run", "jump", "swim"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, got[i].Word)
		}
	}
}

func TestFavoritesClearThenLoad(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	_ = s.Add(ctx, run("run"))
	_ = s.Add(ctx, run("walk"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}

	if string(slot.data) != "[]" {
		t.Errorf("expected empty JSON array persisted, got %s", slot.data)
	}

	reloaded := loadedStore(t, slot)
	if n := len(reloaded.Entries()); n != 0 {
		t.Errorf("expected empty store after reload, got %d", n)
	}
}

func TestFavoritesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	if err := s.Add(ctx, run("run")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	slot.failWrites = true
	err := s.Add(ctx, run("walk"))
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if !s.Contains("walk") {
		t.Error("in-memory state must keep the failed mutation")
	}
	if got := slot.stored(t); len(got) != 1 {
		t.Errorf("slot must still hold the previous list, got %+v", got)
	}

	if err := s.Clear(ctx); !errors.Is(err, ErrPersistence) {
		t.Errorf("expected ErrPersistence on clear, got %v", err)
	}

	// The next successful mutation writes the full current list.
	slot.failWrites = false
	if err := s.Add(ctx, run("jump")); err != nil {
		t.Fatalf("Add() after recovery error = %v", err)
	}
	if got := slot.stored(t); len(got) != 1 || got[0].Word != "jump" {
		t.Errorf("expected persisted [jump], got %+v", got)
	}
}

func TestFavoritesRejectsEmptyWord(t *testing.T) {
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	if err := s.Add(context.Background(), entities.FavoriteEntry{}); !errors.Is(err, entities.ErrEmptyWord) {
		t.Errorf("expected ErrEmptyWord, got %v", err)
	}
	if slot.writes != 0 {
		t.Errorf("expected no write, got %d", slot.writes)
	}
}

func TestFavoritesConcurrentMutationsAreSerialized(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	s := loadedStore(t, slot)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Add(ctx, run(fmt.Sprintf("word-%d", i))); err != nil {
				t.Errorf("Add() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if slot.maxFlight != 1 {
		t.Errorf("expected at most one write in flight, saw %d", slot.maxFlight)
	}
	if got := slot.stored(t); len(got) != n {
		t.Errorf("expected %d persisted entries, got %d", n, len(got))
	}
}

func TestFavoritesService(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	svc := NewFavoritesService(kv, nil)

	if err := svc.Add(ctx, 1, run("Run")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !svc.Contains(ctx, 1, "run") {
		t.Error("expected user 1 to have run")
	}
	if svc.Contains(ctx, 2, "run") {
		t.Error("favorites must be per user")
	}

	if _, err := kv.Get(ctx, FavoritesKey(1)); err != nil {
		t.Errorf("expected slot %q to be written, got %v", FavoritesKey(1), err)
	}

	// A new service over the same KV sees the persisted favorites.
	again := NewFavoritesService(kv, nil)
	if got := again.List(ctx, 1); len(got) != 1 || got[0].Word != "Run" {
		t.Errorf("expected persisted favorites, got %+v", got)
	}

	if err := again.Remove(ctx, 1, "RUN"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := again.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := again.List(ctx, 1); len(got) != 0 {
		t.Errorf("expected empty favorites, got %+v", got)
	}
}

// failOnceKV fails the first Get and then behaves like its MemoryKV.
type failOnceKV struct {
	*storage.MemoryKV
	mu     sync.Mutex
	failed bool
}

func (k *failOnceKV) Get(ctx context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	first := !k.failed
	k.failed = true
	k.mu.Unlock()

	if first {
		return nil, errors.New("connection reset")
	}
	return k.MemoryKV.Get(ctx, key)
}

func TestFavoritesServiceTransientReadError(t *testing.T) {
	ctx := context.Background()
	kv := &failOnceKV{MemoryKV: storage.NewMemoryKV()}
	if err := kv.Set(ctx, FavoritesKey(1), []byte(`[{"word":"alpha"},{"word":"beta"}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	svc := NewFavoritesService(kv, nil)
	if err := svc.Add(ctx, 1, run("gamma")); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded while the backend fails, got %v", err)
	}

	data, err := kv.MemoryKV.Get(ctx, FavoritesKey(1))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != `[{"word":"alpha"},{"word":"beta"}]` {
		t.Errorf("slot must be untouched after a failed load, got %s", data)
	}

	if err := svc.Add(ctx, 1, run("gamma")); err != nil {
		t.Fatalf("Add() after recovery error = %v", err)
	}
	for _, w := range []string{"alpha", "beta", "gamma"} {
		if !svc.Contains(ctx, 1, w) {
			t.Errorf("expected %q to be a favorite", w)
		}
	}
}

func TestFavoritesServicePrune(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	svc := NewFavoritesService(kv, nil)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.Add(ctx, 1, run("run")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Hour) }
	_ = svc.List(ctx, 2)

	if n := svc.Prune(base.Add(30 * time.Minute)); n != 1 {
		t.Fatalf("expected 1 pruned store, got %d", n)
	}
	if n := svc.Prune(base.Add(30 * time.Minute)); n != 0 {
		t.Errorf("expected nothing left to prune, got %d", n)
	}

	// A pruned user is reloaded from the slot.
	if !svc.Contains(ctx, 1, "run") {
		t.Error("expected favorites to survive pruning")
	}
}
