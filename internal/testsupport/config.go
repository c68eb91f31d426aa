package testsupport

import (
	"path/filepath"
	"testing"

	"tunesets/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test.
// Fetch delays and throttling are disabled so tests never sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = dataDir
	cfgVal.Paths.SeedFile = filepath.Join(dataDir, "playlist.txt")
	cfgVal.Paths.TextOutput = filepath.Join(dataDir, "sets_results.txt")
	cfgVal.Paths.HTMLOutput = filepath.Join(dataDir, "sets_results.html")
	cfgVal.Paths.LockFile = filepath.Join(dataDir, ".tunesets.lock")
	cfgVal.Cache.Path = filepath.Join(dataDir, "tune_list_sets.db")
	cfgVal.Overrides = []config.OverrideSource{
		{Path: filepath.Join(dataDir, "set_overrides.txt"), Album: "me"},
		{Path: filepath.Join(dataDir, "foin_session.txt"), Album: "fs"},
	}
	cfgVal.Catalog.BaseURL = "http://127.0.0.1:1"
	cfgVal.Catalog.RequestTimeout = 5
	cfgVal.Catalog.RetryDelayMS = 0
	cfgVal.Catalog.ThrottleAfterMS = 0
	cfgVal.Catalog.ThrottleRestMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalogURL points fetching at a test server.
func WithCatalogURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BaseURL = url
	}
}

// WithCacheDisabled turns off the adjacency snapshot.
func WithCacheDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// WithFetchAttempts overrides the per-tune attempt budget.
func WithFetchAttempts(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.FetchAttempts = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
