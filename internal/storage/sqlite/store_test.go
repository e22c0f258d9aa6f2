package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreGetSet(t *testing.T) {
	store := setupTestStore(t)

	if _, ok, err := store.Get("habits"); err != nil || ok {
		t.Fatalf("Get on empty store = %v, %v; want absent", ok, err)
	}

	if err := store.Set("habits", []byte(`[{"id":"h1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("habits", []byte(`[{"id":"h2"}]`)); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}

	doc, ok, err := store.Get("habits")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if string(doc) != `[{"id":"h2"}]` {
		t.Errorf("last write should win, got %s", doc)
	}

	if err := store.Set("todos", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "habits" || keys[1] != "todos" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	records := storage.NewRecords(store)
	if err := records.LogMood(models.MoodEntry{Date: models.MustParseDate("2024-01-03"), Mood: models.MoodCalm}); err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	log, err := storage.NewRecords(reopened).Moods()
	if err != nil {
		t.Fatalf("Moods failed: %v", err)
	}
	if log[models.MustParseDate("2024-01-03")].Mood != models.MoodCalm {
		t.Errorf("mood not persisted: %+v", log)
	}
}

func TestStoreLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("expected Load to fail before Init")
	}
	if _, _, err := store.Get("habits"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Get on unloaded store = %v, want ErrNotLoaded", err)
	}
}

func TestStoreInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		store := NewStore(path)
		if err := store.Init(); err != nil {
			t.Fatalf("Init #%d failed: %v", i+1, err)
		}
		store.Close()
	}
}

func TestStoreSchemaVersion(t *testing.T) {
	store := setupTestStore(t)

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest == 0 {
		t.Errorf("SchemaVersion = %d, %d; want equal and non-zero", current, latest)
	}

	if _, _, err := NewStore(filepath.Join(t.TempDir(), "x.db")).SchemaVersion(); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("SchemaVersion before Load error = %v, want ErrNotLoaded", err)
	}
}
