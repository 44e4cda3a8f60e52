package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/wittyweekly/wire/internal/models"
)

func edition(id string) *models.Edition {
	return &models.Edition{
		ID:          id,
		Content:     "## Test\nContent for " + id,
		Sources:     []models.Citation{{Title: "T", URI: "https://t.com"}},
		GeneratedAt: time.Date(2026, 8, 21, 9, 30, 0, 0, time.UTC),
		Themes:      []string{"AI"},
	}
}

func TestStoreInsertOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryPersistence())

	if err := s.Insert(ctx, edition("e1")); err != nil {
		t.Fatalf("Insert(e1) error = %v", err)
	}
	if err := s.Insert(ctx, edition("e2")); err != nil {
		t.Fatalf("Insert(e2) error = %v", err)
	}

	list := s.List(ctx)
	if len(list) != 2 {
		t.Fatalf("List() returned %d editions, want 2", len(list))
	}
	if list[0].ID != "e2" || list[1].ID != "e1" {
		t.Errorf("List() order = [%s, %s], want [e2, e1]", list[0].ID, list[1].ID)
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryPersistence())

	if err := s.Insert(ctx, edition("e1")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := s.List(ctx); len(got) != 0 {
		t.Errorf("List() after Clear() returned %d editions, want 0", len(got))
	}
}

func TestStoreGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, NewMemoryPersistence())

	if err := s.Insert(ctx, edition("e1")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := s.Get(ctx, "e1")
	if err != nil {
		t.Fatalf("Get(e1) error = %v", err)
	}
	if got.ID != "e1" {
		t.Errorf("Get(e1).ID = %s", got.ID)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrEditionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrEditionNotFound", err)
	}
}

func TestStoreReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	persistence := NewMemoryPersistence()

	first := NewStore(ctx, persistence)
	want := edition("e1")
	if err := first.Insert(ctx, want); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// A fresh store over the same persistence sees the same archive,
	// timestamps included.
	second := NewStore(ctx, persistence)
	got, err := second.Get(ctx, "e1")
	if err != nil {
		t.Fatalf("Get() after reload error = %v", err)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("GeneratedAt after reload = %v, want %v", got.GeneratedAt, want.GeneratedAt)
	}
	if got.Content != want.Content {
		t.Errorf("Content after reload = %q", got.Content)
	}
}

func TestStoreCorruptArchiveDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	persistence := NewMemoryPersistence()
	if err := persistence.Save(ctx, []byte("{not json")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := NewStore(ctx, persistence)
	if got := s.List(ctx); len(got) != 0 {
		t.Errorf("corrupt archive should load as empty, got %d editions", len(got))
	}

	// The store must still be writable afterwards.
	if err := s.Insert(ctx, edition("e1")); err != nil {
		t.Errorf("Insert() after corrupt load error = %v", err)
	}
}

func TestFilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive", "editions.json")

	p, err := NewFilePersistence(path)
	if err != nil {
		t.Fatalf("NewFilePersistence() error = %v", err)
	}

	if _, err := p.Load(ctx); !errors.Is(err, ErrNoArchive) {
		t.Errorf("Load() before first save error = %v, want ErrNoArchive", err)
	}

	if err := p.Save(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("Load() = %q, want []", data)
	}
}

func TestFilePersistenceBackedStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "editions.json")

	p, err := NewFilePersistence(path)
	if err != nil {
		t.Fatalf("NewFilePersistence() error = %v", err)
	}

	s := NewStore(ctx, p)
	if err := s.Insert(ctx, edition("e1")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	reloaded := NewStore(ctx, p)
	if got := reloaded.List(ctx); len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("reloaded store = %v, want one edition e1", got)
	}
}
