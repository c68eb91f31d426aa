package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateOverrides(); err != nil {
		return err
	}
	if err := c.validateAssembly(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SeedFile) == "" {
		return errors.New("paths.seed_file must be set")
	}
	if strings.TrimSpace(c.Paths.HTMLOutput) == "" {
		return errors.New("paths.html_output must be set")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	parsed, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("catalog.base_url must be an absolute URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.RequestTimeout < 0 {
		return errors.New("catalog.request_timeout must be positive")
	}
	if c.Catalog.FetchAttempts < 1 {
		return errors.New("catalog.fetch_attempts must be at least 1")
	}
	if c.Catalog.RetryDelayMS < 0 || c.Catalog.ThrottleAfterMS < 0 || c.Catalog.ThrottleRestMS < 0 {
		return errors.New("catalog retry and throttle durations must not be negative")
	}
	return nil
}

func (c *Config) validateOverrides() error {
	seen := make(map[string]struct{}, len(c.Overrides))
	for i, src := range c.Overrides {
		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("overrides[%d].path must be set", i)
		}
		if src.Album == "" {
			return fmt.Errorf("overrides[%d].album must be set", i)
		}
		if _, dup := seen[src.Path]; dup {
			return fmt.Errorf("overrides[%d].path %q is listed more than once", i, src.Path)
		}
		seen[src.Path] = struct{}{}
	}
	return nil
}

func (c *Config) validateAssembly() error {
	if c.Assembly.MaxPasses < 1 || c.Assembly.MaxPasses > maxMaxPasses {
		return fmt.Errorf("assembly.max_passes must be between 1 and %d", maxMaxPasses)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
