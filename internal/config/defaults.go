package config

const (
	defaultDataDir         = "data"
	defaultSeedFile        = "playlist.txt"
	defaultTextOutput      = "sets_results.txt"
	defaultHTMLOutput      = "sets_results.html"
	defaultLockFile        = ".tunesets.lock"
	defaultCatalogBaseURL  = "https://www.irishtune.info"
	defaultUserAgent       = "Mozilla/5.0"
	defaultRequestTimeout  = 60
	defaultFetchAttempts   = 4
	defaultRetryDelayMS    = 2000
	defaultThrottleAfterMS = 2000
	defaultThrottleRestMS  = 1000
	defaultCacheEnabled    = true
	defaultCachePath       = "tune_list_sets.db"
	defaultMaxPasses       = 20
	maxMaxPasses           = 1000
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultOverrides() []OverrideSource {
	return []OverrideSource{
		{Path: "set_overrides.txt", Album: "me"},
		{Path: "foin_session.txt", Album: "fs"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			SeedFile:   defaultSeedFile,
			TextOutput: defaultTextOutput,
			HTMLOutput: defaultHTMLOutput,
			LockFile:   defaultLockFile,
		},
		Catalog: Catalog{
			BaseURL:         defaultCatalogBaseURL,
			UserAgent:       defaultUserAgent,
			RequestTimeout:  defaultRequestTimeout,
			FetchAttempts:   defaultFetchAttempts,
			RetryDelayMS:    defaultRetryDelayMS,
			ThrottleAfterMS: defaultThrottleAfterMS,
			ThrottleRestMS:  defaultThrottleRestMS,
		},
		Cache: Cache{
			Enabled: defaultCacheEnabled,
			Path:    defaultCachePath,
		},
		Overrides: defaultOverrides(),
		Assembly: Assembly{
			MaxPasses: defaultMaxPasses,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
