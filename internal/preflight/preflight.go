package preflight

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"tunesets/internal/config"
	"tunesets/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects the checks that depend on how the run will source its
// adjacency data.
type Options struct {
	// Fetching is set when no cached snapshot will be used, so the playlist
	// must be readable and the catalog site reachable.
	Fetching bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if opts.Fetching {
		results = append(results, CheckFileReadable("Playlist", cfg.Paths.SeedFile))
		results = append(results, CheckCatalog(ctx, cfg.Catalog.BaseURL, cfg.Catalog.UserAgent))
	}

	for _, src := range cfg.Overrides {
		results = append(results, CheckFileReadable(fmt.Sprintf("Overrides (%s)", src.Album), src.Path))
	}

	seen := make(map[string]struct{})
	for _, out := range []string{cfg.Paths.HTMLOutput, cfg.Paths.TextOutput} {
		if strings.TrimSpace(out) == "" {
			continue
		}
		dir := filepath.Dir(out)
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		results = append(results, CheckDirectoryAccess("Output directory", dir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err folds failed results into one error tagged services.ErrNotFound, or
// returns nil when every check passed.
func Err(results []Result) error {
	failed := Failed(results)
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, len(failed))
	for i, r := range failed {
		parts[i] = r.Name + ": " + r.Detail
	}
	return services.Wrap(services.ErrNotFound, "preflight", "", strings.Join(parts, "; "), nil)
}
