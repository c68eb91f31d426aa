package setbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"tunesets/internal/adjcache"
	"tunesets/internal/assembly"
	"tunesets/internal/config"
	"tunesets/internal/fileutil"
	"tunesets/internal/logging"
	"tunesets/internal/overrides"
	"tunesets/internal/preflight"
	"tunesets/internal/render"
	"tunesets/internal/runlock"
	"tunesets/internal/services"
	"tunesets/internal/tunepage"
	"tunesets/internal/tunes"
)

// Report summarizes a finished build.
type Report struct {
	RunID     string
	Tunes     int
	Result    assembly.Result
	CacheUsed bool
	TextPath  string
	HTMLPath  string
	Duration  time.Duration
}

// Stats converts the report into the fields the summary table shows.
func (r Report) Stats() render.Stats {
	return render.Stats{
		Passes:           r.Result.Passes,
		Merged:           r.Result.Merged,
		Relaxed:          r.Result.Relaxed,
		Converged:        r.Result.Converged,
		OverridesApplied: r.Result.OverridesApplied,
		OverridesDropped: r.Result.OverridesDropped,
		CacheUsed:        r.CacheUsed,
	}
}

// Builder runs builds for one configuration.
type Builder struct {
	cfg      *config.Config
	logger   *slog.Logger
	stdout   io.Writer
	newRunID func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithStdout redirects the printed text listing.
func WithStdout(w io.Writer) Option {
	return func(b *Builder) { b.stdout = w }
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(b *Builder) { b.newRunID = func() string { return id } }
}

// New creates a Builder. A nil logger discards log output.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		logger:   logger,
		stdout:   os.Stdout,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	return b
}

// Run executes one build.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	if b.cfg == nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "build", "", "configuration is nil", nil)
	}
	start := time.Now()
	report := Report{RunID: b.newRunID()}
	ctx = logging.WithRunID(ctx, report.RunID)
	base := logging.WithContext(ctx, b.logger)
	logger := logging.NewComponentLogger(base, "setbuild")

	if err := b.cfg.EnsureDirectories(); err != nil {
		return report, services.Wrap(services.ErrConfiguration, "build", "prepare directories", "", err)
	}

	lock, err := runlock.Acquire(b.cfg.Paths.LockFile)
	if err != nil {
		return report, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	var store *adjcache.Store
	var entries []tunes.Entry
	if b.cfg.Cache.Enabled {
		store, err = adjcache.Open(ctx, b.cfg.Cache.Path, base)
		if err != nil {
			return report, services.Wrap(services.ErrConfiguration, "cache", "open", b.cfg.Cache.Path, err)
		}
		defer store.Close()

		entries, err = store.Load(ctx)
		switch {
		case err == nil:
			report.CacheUsed = true
			logger.Info("using cached adjacency snapshot",
				logging.String(logging.FieldEventType, "adjcache_hit"),
				logging.Int("records", len(entries)),
				logging.String("path", b.cfg.Cache.Path))
		case errors.Is(err, adjcache.ErrNoSnapshot):
		default:
			return report, services.Wrap(services.ErrTransient, "cache", "load", b.cfg.Cache.Path, err)
		}
	}

	checks := preflight.RunAll(ctx, b.cfg, preflight.Options{Fetching: !report.CacheUsed})
	for _, check := range checks {
		logger.Debug("preflight check",
			logging.String("check", check.Name),
			logging.Bool("passed", check.Passed),
			logging.String("detail", check.Detail))
	}
	if err := preflight.Err(checks); err != nil {
		return report, err
	}

	if !report.CacheUsed {
		entries, err = b.fetch(ctx, base, logger)
		if err != nil {
			return report, err
		}
		if store != nil {
			if err := store.Save(ctx, entries); err != nil {
				logging.WarnWithContext(logger, "failed to save adjacency snapshot", "adjcache_save_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check permissions on the cache file"),
					logging.String(logging.FieldImpact, "the next run will fetch from the catalog again"))
			}
		}
	}

	catalog := tunes.NewCatalog(entries)
	report.Tunes = catalog.Len()

	links, err := overrides.LoadAll(overrideSources(b.cfg.Overrides))
	if err != nil {
		if errors.Is(err, overrides.ErrMalformedOverride) {
			return report, services.Wrap(services.ErrValidation, "overrides", "parse", "", err)
		}
		return report, services.Wrap(services.ErrNotFound, "overrides", "read", "", err)
	}
	for _, m := range overrides.CheckNames(links, catalog, overrides.DefaultNameThreshold) {
		logging.WarnWithContext(logger, "override name differs from catalog title", "override_name_mismatch",
			logging.String(logging.FieldTuneID, m.Link.NextID),
			logging.String("override_name", m.Link.NextName),
			logging.String("catalog_name", m.CatalogName),
			logging.String(logging.FieldSource, m.Link.Source),
			logging.Int(logging.FieldLine, m.Link.Line),
			logging.String(logging.FieldErrorHint, "check the tune id in the override file"),
			logging.String(logging.FieldImpact, "the link is still applied"))
	}

	report.Result = assembly.Assemble(catalog, links, assembly.Options{
		MaxPasses: b.cfg.Assembly.MaxPasses,
		Logger:    base,
	})

	text, page := render.Render(report.Result.Chains, b.cfg.Catalog.BaseURL)
	if err := fileutil.WriteAtomic(b.cfg.Paths.HTMLOutput, []byte(page), 0o644); err != nil {
		return report, services.Wrap(services.ErrTransient, "render", "write html", b.cfg.Paths.HTMLOutput, err)
	}
	report.HTMLPath = b.cfg.Paths.HTMLOutput
	if strings.TrimSpace(b.cfg.Paths.TextOutput) != "" {
		if err := fileutil.WriteAtomic(b.cfg.Paths.TextOutput, []byte(text), 0o644); err != nil {
			return report, services.Wrap(services.ErrTransient, "render", "write text", b.cfg.Paths.TextOutput, err)
		}
		report.TextPath = b.cfg.Paths.TextOutput
	}
	if _, err := io.WriteString(b.stdout, text); err != nil {
		return report, fmt.Errorf("print sets: %w", err)
	}

	report.Duration = time.Since(start)
	logger.Info("build complete",
		logging.String(logging.FieldEventType, "build_complete"),
		logging.Int("tunes", report.Tunes),
		logging.Int("sets", len(report.Result.Chains)),
		logging.Int("passes", report.Result.Passes),
		logging.Bool("converged", report.Result.Converged),
		logging.Bool("cache_used", report.CacheUsed),
		logging.Duration("duration", report.Duration))
	return report, nil
}

func (b *Builder) fetch(ctx context.Context, base, logger *slog.Logger) ([]tunes.Entry, error) {
	seed, err := tunes.LoadSeed(b.cfg.Paths.SeedFile)
	if err != nil {
		if errors.Is(err, tunes.ErrMalformedSeed) {
			return nil, services.Wrap(services.ErrValidation, "seed", "parse", "", err)
		}
		return nil, services.Wrap(services.ErrNotFound, "seed", "read", "", err)
	}
	logger.Info("fetching adjacency data from catalog",
		logging.String(logging.FieldEventType, "catalog_fetch_started"),
		logging.Int("tunes", len(seed)),
		logging.String("base_url", b.cfg.Catalog.BaseURL))

	client, err := b.newClient(base)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "fetch", "create client", "", err)
	}
	entries, err := client.FetchAll(ctx, seed)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, services.Wrap(services.ErrExternal, "fetch", "tune pages", "", err)
	}
	return entries, nil
}

func (b *Builder) newClient(logger *slog.Logger) (*tunepage.Client, error) {
	return tunepage.New(tunepage.Config{
		BaseURL:       b.cfg.Catalog.BaseURL,
		UserAgent:     b.cfg.Catalog.UserAgent,
		Timeout:       b.cfg.RequestTimeout(),
		Attempts:      b.cfg.Catalog.FetchAttempts,
		RetryDelay:    b.cfg.RetryDelay(),
		ThrottleAfter: b.cfg.ThrottleAfter(),
		ThrottleRest:  b.cfg.ThrottleRest(),
		Logger:        logger,
	})
}

func overrideSources(cfgSources []config.OverrideSource) []overrides.Source {
	sources := make([]overrides.Source, len(cfgSources))
	for i, src := range cfgSources {
		sources[i] = overrides.Source{Path: src.Path, Album: src.Album}
	}
	return sources
}
