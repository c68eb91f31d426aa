package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, output, and bookkeeping file locations. Relative
// file names resolve against DataDir.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	SeedFile   string `toml:"seed_file"`
	TextOutput string `toml:"text_output"`
	HTMLOutput string `toml:"html_output"`
	LogDir     string `toml:"log_dir"`
	LockFile   string `toml:"lock_file"`
}

// Catalog contains settings for fetching tune pages from the catalog site.
type Catalog struct {
	BaseURL         string `toml:"base_url"`
	UserAgent       string `toml:"user_agent"`
	RequestTimeout  int    `toml:"request_timeout"`
	FetchAttempts   int    `toml:"fetch_attempts"`
	RetryDelayMS    int    `toml:"retry_delay_ms"`
	ThrottleAfterMS int    `toml:"throttle_after_ms"`
	ThrottleRestMS  int    `toml:"throttle_rest_ms"`
}

// Cache contains configuration for the fetched adjacency snapshot.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// OverrideSource is one curated set file and the album label its links carry.
// Sources apply in the order they appear.
type OverrideSource struct {
	Path  string `toml:"path"`
	Album string `toml:"album"`
}

// Assembly contains engine limits.
type Assembly struct {
	MaxPasses int `toml:"max_passes"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tunesets.
//
// Configuration sections by subsystem:
//   - Paths: seed playlist, rendered outputs, log directory, run lock
//   - Catalog: remote tune page fetching, retries, and throttling
//   - Cache: SQLite snapshot of fetched adjacency data
//   - Overrides: curated set files in priority order
//   - Assembly: merge pass limit
//   - Logging: log format and level
type Config struct {
	Paths     Paths            `toml:"paths"`
	Catalog   Catalog          `toml:"catalog"`
	Cache     Cache            `toml:"cache"`
	Overrides []OverrideSource `toml:"overrides"`
	Assembly  Assembly         `toml:"assembly"`
	Logging   Logging          `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tunesets/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// A file that lists overrides replaces the default sources entirely.
		cfg.Overrides = nil
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		if cfg.Overrides == nil {
			cfg.Overrides = defaultOverrides()
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tunesets.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories outputs, cache, and logs are written to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir}
	for _, file := range []string{c.Paths.TextOutput, c.Paths.HTMLOutput, c.Paths.LockFile} {
		if strings.TrimSpace(file) != "" {
			dirs = append(dirs, filepath.Dir(file))
		}
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Cache.Path))
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Catalog.RequestTimeout) * time.Second
}

// RetryDelay returns the fixed pause between fetch attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Catalog.RetryDelayMS) * time.Millisecond
}

// ThrottleAfter returns how long fetching may run before the next rest.
func (c *Config) ThrottleAfter() time.Duration {
	return time.Duration(c.Catalog.ThrottleAfterMS) * time.Millisecond
}

// ThrottleRest returns the length of each rest.
func (c *Config) ThrottleRest() time.Duration {
	return time.Duration(c.Catalog.ThrottleRestMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// resolveIn expands pathValue, anchoring bare relative names in base.
func resolveIn(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if !strings.HasPrefix(pathValue, "~") && !filepath.IsAbs(pathValue) {
		pathValue = filepath.Join(base, pathValue)
	}
	return expandPath(pathValue)
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
