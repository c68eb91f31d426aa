package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeOverrides(); err != nil {
		return err
	}
	if c.Assembly.MaxPasses == 0 {
		c.Assembly.MaxPasses = defaultMaxPasses
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	base := c.Paths.DataDir
	if c.Paths.SeedFile, err = resolveIn(base, c.Paths.SeedFile); err != nil {
		return fmt.Errorf("paths.seed_file: %w", err)
	}
	if c.Paths.TextOutput, err = resolveIn(base, c.Paths.TextOutput); err != nil {
		return fmt.Errorf("paths.text_output: %w", err)
	}
	if c.Paths.HTMLOutput, err = resolveIn(base, c.Paths.HTMLOutput); err != nil {
		return fmt.Errorf("paths.html_output: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = resolveIn(base, c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	if value, ok := os.LookupEnv("TUNESETS_CATALOG_URL"); ok && strings.TrimSpace(value) != "" {
		c.Catalog.BaseURL = value
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	c.Catalog.UserAgent = strings.TrimSpace(c.Catalog.UserAgent)
	if c.Catalog.UserAgent == "" {
		c.Catalog.UserAgent = defaultUserAgent
	}
	if c.Catalog.RequestTimeout == 0 {
		c.Catalog.RequestTimeout = defaultRequestTimeout
	}
	if c.Catalog.FetchAttempts == 0 {
		c.Catalog.FetchAttempts = defaultFetchAttempts
	}
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	var err error
	if c.Cache.Path, err = resolveIn(c.Paths.DataDir, c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeOverrides() error {
	for i := range c.Overrides {
		src := &c.Overrides[i]
		src.Album = strings.TrimSpace(src.Album)
		var err error
		if src.Path, err = resolveIn(c.Paths.DataDir, src.Path); err != nil {
			return fmt.Errorf("overrides[%d].path: %w", i, err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
