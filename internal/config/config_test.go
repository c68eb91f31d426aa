package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tunesets/internal/config"
)

func TestLoadDefaultConfigResolvesPathsUnderDataDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	work := t.TempDir()
	t.Chdir(work)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "tunesets", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}

	dataDir := filepath.Join(work, "data")
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, dataDir)
	}
	if cfg.Paths.SeedFile != filepath.Join(dataDir, "playlist.txt") {
		t.Fatalf("unexpected seed file: %q", cfg.Paths.SeedFile)
	}
	if cfg.Paths.HTMLOutput != filepath.Join(dataDir, "sets_results.html") {
		t.Fatalf("unexpected html output: %q", cfg.Paths.HTMLOutput)
	}
	if cfg.Cache.Path != filepath.Join(dataDir, "tune_list_sets.db") {
		t.Fatalf("unexpected cache path: %q", cfg.Cache.Path)
	}
	if len(cfg.Overrides) != 2 {
		t.Fatalf("expected two default override sources, got %d", len(cfg.Overrides))
	}
	if cfg.Overrides[0].Album != "me" || cfg.Overrides[1].Album != "fs" {
		t.Fatalf("unexpected override order: %+v", cfg.Overrides)
	}
	if cfg.Overrides[0].Path != filepath.Join(dataDir, "set_overrides.txt") {
		t.Fatalf("unexpected override path: %q", cfg.Overrides[0].Path)
	}
	if cfg.Catalog.BaseURL != "https://www.irishtune.info" {
		t.Fatalf("unexpected base url: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Assembly.MaxPasses != 20 {
		t.Fatalf("unexpected max passes: %d", cfg.Assembly.MaxPasses)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir, got %q", cfg.Paths.LogDir)
	}
}

func TestLoadProjectConfigWhenUserConfigMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	content := "[assembly]\nmax_passes = 5\n"
	if err := os.WriteFile(filepath.Join(work, "tunesets.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if resolved != filepath.Join(work, "tunesets.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Assembly.MaxPasses != 5 {
		t.Fatalf("expected max passes from file, got %d", cfg.Assembly.MaxPasses)
	}
}

func TestLoadCustomPathOverridesSources(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `[paths]
data_dir = "~/tunes"
seed_file = "/srv/playlist.txt"
text_output = ""

[catalog]
base_url = "http://localhost:8080/"

[[overrides]]
path = "mine.txt"
album = "mine"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected explicit config to be used, got %q exists=%v", resolved, exists)
	}

	dataDir := filepath.Join(tempHome, "tunes")
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.SeedFile != "/srv/playlist.txt" {
		t.Fatalf("absolute seed path should be kept, got %q", cfg.Paths.SeedFile)
	}
	if cfg.Paths.TextOutput != "" {
		t.Fatalf("expected empty text output, got %q", cfg.Paths.TextOutput)
	}
	if cfg.Catalog.BaseURL != "http://localhost:8080" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Catalog.BaseURL)
	}
	if len(cfg.Overrides) != 1 || cfg.Overrides[0].Album != "mine" {
		t.Fatalf("expected file overrides to replace defaults, got %+v", cfg.Overrides)
	}
	if cfg.Overrides[0].Path != filepath.Join(dataDir, "mine.txt") {
		t.Fatalf("unexpected override path: %q", cfg.Overrides[0].Path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging settings, got %+v", cfg.Logging)
	}
}

func TestLoadKeepsDefaultOverridesWhenFileOmitsThem(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[cache]\nenabled = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Fatal("expected cache disabled from file")
	}
	if len(cfg.Overrides) != 2 {
		t.Fatalf("expected default overrides, got %+v", cfg.Overrides)
	}
}

func TestCatalogURLFromEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TUNESETS_CATALOG_URL", "http://127.0.0.1:9999/")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.BaseURL != "http://127.0.0.1:9999" {
		t.Fatalf("expected env base url, got %q", cfg.Catalog.BaseURL)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[assembly]\nmax_pass = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"base url", func(c *config.Config) { c.Catalog.BaseURL = "irishtune" }, "catalog.base_url"},
		{"attempts", func(c *config.Config) { c.Catalog.FetchAttempts = 0 }, "fetch_attempts"},
		{"negative delay", func(c *config.Config) { c.Catalog.RetryDelayMS = -1 }, "must not be negative"},
		{"passes", func(c *config.Config) { c.Assembly.MaxPasses = 0 }, "assembly.max_passes"},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"override album", func(c *config.Config) { c.Overrides[0].Album = "" }, "overrides[0].album"},
		{"duplicate override", func(c *config.Config) { c.Overrides[1].Path = c.Overrides[0].Path }, "more than once"},
		{"seed", func(c *config.Config) { c.Paths.SeedFile = " " }, "paths.seed_file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error to mention %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	var sample config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &sample); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	def := config.Default()
	if sample.Paths != def.Paths {
		t.Fatalf("sample paths drift from defaults: %+v vs %+v", sample.Paths, def.Paths)
	}
	if sample.Catalog != def.Catalog {
		t.Fatalf("sample catalog drifts from defaults: %+v vs %+v", sample.Catalog, def.Catalog)
	}
	if sample.Assembly != def.Assembly || sample.Logging != def.Logging || sample.Cache != def.Cache {
		t.Fatal("sample assembly, logging, or cache drift from defaults")
	}
	if len(sample.Overrides) != len(def.Overrides) {
		t.Fatalf("sample overrides drift from defaults: %+v", sample.Overrides)
	}
}

func TestCreateSampleWritesLoadableFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample to load, exists=%v err=%v", exists, err)
	}
}

func TestEnsureDirectoriesCreatesOutputParents(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.TextOutput = filepath.Join(base, "out", "sets.txt")
	cfg.Paths.HTMLOutput = filepath.Join(base, "web", "sets.html")
	cfg.Paths.LockFile = filepath.Join(base, "data", ".lock")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Cache.Path = filepath.Join(base, "cache", "adj.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{"data", "out", "web", "logs", "cache"} {
		if info, err := os.Stat(filepath.Join(base, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected %s directory, err=%v", dir, err)
		}
	}
}
