package testsupport

import (
	"context"
	"testing"

	"tunesets/internal/adjcache"
	"tunesets/internal/config"
	"tunesets/internal/tunes"
)

// MustOpenCache opens the adjacency cache named by cfg and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *adjcache.Store {
	t.Helper()

	store, err := adjcache.Open(context.Background(), cfg.Cache.Path, nil)
	if err != nil {
		t.Fatalf("adjcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCache stores entries as the cached snapshot for cfg.
func SeedCache(t testing.TB, cfg *config.Config, entries []tunes.Entry) {
	t.Helper()

	store := MustOpenCache(t, cfg)
	if err := store.Save(context.Background(), entries); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
