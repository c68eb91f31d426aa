package adjcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tunesets/internal/tunes"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleEntries() []tunes.Entry {
	return []tunes.Entry{
		{
			Tune:    tunes.TuneRef{ID: "10", Name: "The Silver Spear"},
			Follows: []tunes.Edge{{NeighborID: "11", NeighborName: "Drowsy Maggie", Album: "Old Hag"}},
		},
		{
			Tune:     tunes.TuneRef{ID: "11", Name: "Drowsy Maggie"},
			Precedes: []tunes.Edge{{NeighborID: "10", NeighborName: "The Silver Spear"}},
		},
		{Tune: tunes.TuneRef{ID: "12", Name: "Cailín"}},
	}
}

func TestLoadEmptyCacheReportsNoSnapshot(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "cache.db"))
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	info, err := store.Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Exists || info.Records != 0 {
		t.Fatalf("unexpected info for empty cache: %+v", info)
	}
}

func TestSaveLoadPreservesOrderAndEdges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	store := openTestStore(t, path)
	ctx := context.Background()

	want := sampleEntries()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Save(ctx, sampleEntries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openTestStore(t, path)
	got, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(got) != 3 || got[2].Tune.Name != "Cailín" {
		t.Fatalf("unexpected entries after reopen: %+v", got)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()

	if err := store.Save(ctx, sampleEntries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	replacement := []tunes.Entry{{Tune: tunes.TuneRef{ID: "99", Name: "Only"}}}
	if err := store.Save(ctx, replacement); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(replacement, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("expected replacement snapshot (-want +got):\n%s", diff)
	}
}

func TestSaveEmptyPlaylistIsASnapshot(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()
	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("expected empty snapshot to load, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}

func TestInfoAndClear(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "cache.db"))
	saved := time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return saved }
	ctx := context.Background()

	if err := store.Save(ctx, sampleEntries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := store.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !info.Exists || info.Records != 3 || !info.SavedAt.Equal(saved) {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.SizeBytes <= 0 {
		t.Fatalf("expected file size, got %d", info.SizeBytes)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot after clear, got %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path, nil)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		var count int
		if err := store.db.QueryRow("SELECT COUNT(1) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("count migrations: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected one recorded migration, got %d", count)
		}
		_ = store.Close()
	}
}
