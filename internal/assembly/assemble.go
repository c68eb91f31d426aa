package assembly

import (
	"log/slog"

	"tunesets/internal/logging"
	"tunesets/internal/tunes"
)

// DefaultMaxPasses caps the number of merge passes in one run.
const DefaultMaxPasses = 20

// Options tunes a run of the engine.
type Options struct {
	MaxPasses int
	Logger    *slog.Logger
}

// Result is the final partition plus a summary of how it was reached.
type Result struct {
	Chains           []tunes.Chain
	Passes           int
	Merged           int
	Relaxed          bool
	Converged        bool
	OverridesApplied int
	OverridesDropped int
}

// Settle runs merge passes until no progress is possible or maxPasses is
// reached, compacting after every pass. It reports the passes run, whether
// the album constraint was relaxed, and whether the run stopped because
// nothing more could merge.
func (w *WorkSet) Settle(maxPasses int) (passes, merged int, relaxed, converged bool) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	matchAlbums := true
	for passes < maxPasses {
		changes := w.RunPass(matchAlbums)
		w.Compact()
		passes++
		merged += changes

		w.logger.Debug("merge pass complete",
			logging.String(logging.FieldEventType, "merge_pass"),
			logging.Int(logging.FieldPass, passes),
			logging.Bool(logging.FieldMatchAlbums, matchAlbums),
			logging.Int(logging.FieldMerged, changes),
			logging.Int(logging.FieldChains, len(w.slots)))

		if changes > 0 {
			continue
		}
		if matchAlbums {
			matchAlbums = false
			relaxed = true
			w.logger.Info("no merges with album matching, relaxing album constraint",
				logging.String(logging.FieldEventType, "album_constraint_relaxed"),
				logging.Int(logging.FieldPass, passes))
			continue
		}
		converged = true
		w.logger.Info("no further merges possible",
			logging.String(logging.FieldEventType, "assembly_settled"),
			logging.Int(logging.FieldPass, passes))
		break
	}
	if !converged {
		w.logger.Warn("merge pass limit reached",
			logging.String(logging.FieldEventType, "assembly_pass_cap"),
			logging.Int("max_passes", maxPasses),
			logging.String(logging.FieldImpact, "remaining singletons are emitted unmerged"))
	}
	return passes, merged, relaxed, converged
}

// Assemble partitions catalog into chains: overrides first, in the order
// given, then bounded automatic merging.
func Assemble(catalog Catalog, links []tunes.Link, opts Options) Result {
	w := NewWorkSet(catalog, opts.Logger)

	applied := w.ApplyOverrides(links)
	w.Compact()

	passes, merged, relaxed, converged := w.Settle(opts.MaxPasses)
	return Result{
		Chains:           w.Chains(),
		Passes:           passes,
		Merged:           merged,
		Relaxed:          relaxed,
		Converged:        converged,
		OverridesApplied: applied,
		OverridesDropped: len(links) - applied,
	}
}
