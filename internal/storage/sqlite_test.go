package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestStoreOpenClose(t *testing.T) {
	_, dbPath := openStore(t)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreEmptyLoad(t *testing.T) {
	store, _ := openStore(t)

	_, err := store.Load(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() on empty store error = %v, want fs.ErrNotExist", err)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	for _, data := range []string{"first", "second", "third"} {
		if err := store.Save(ctx, []byte(data)); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if string(got) != "third" {
		t.Errorf("Load() = %q, want newest snapshot %q", got, "third")
	}
}

func TestStoreHistory(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	for _, data := range []string{"a", "b", "c"} {
		if err := store.Save(ctx, []byte(data)); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	history, err := store.History(ctx, 2)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(history))
	}
	if string(history[0].Data) != "c" || string(history[1].Data) != "b" {
		t.Errorf("History() order = %q, %q; want c, b", history[0].Data, history[1].Data)
	}
	if history[0].CreatedAt.IsZero() {
		t.Error("Snapshot has no creation time")
	}

	snap, err := store.Snapshot(ctx, history[1].ID)
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if string(snap.Data) != "b" {
		t.Errorf("Snapshot() = %q, want b", snap.Data)
	}

	if _, err := store.Snapshot(ctx, 9999); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Snapshot(9999) error = %v, want fs.ErrNotExist", err)
	}
}

func TestStorePrune(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Save(ctx, []byte{byte(i)}); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	n, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Prune() removed %d, want 3", n)
	}

	history, err := store.History(ctx, 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 snapshots after prune, got %d", len(history))
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("Load() after prune = %v, want [4]", got)
	}
}

func TestStoreAsSettingsBackend(t *testing.T) {
	store, dbPath := openStore(t)
	ctx := context.Background()

	repo := settings.Open(ctx, store)
	if err := repo.SetMuted(ctx, true); err != nil {
		t.Fatalf("SetMuted() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer reopened.Close()

	got := settings.Open(ctx, reopened).Current()
	if !got.Tools.IsMuted {
		t.Error("Settings were not persisted in the database")
	}
}
