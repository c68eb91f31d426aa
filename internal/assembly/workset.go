package assembly

import (
	"log/slog"

	"tunesets/internal/logging"
	"tunesets/internal/tunes"
)

// Catalog is the read-only view of tune entries the engine consumes.
type Catalog interface {
	Get(id string) (tunes.Entry, bool)
	All() []tunes.Entry
}

type slot struct {
	key   string
	chain *tunes.Chain
	dead  bool
}

// WorkSet is the live, ordered collection of chains being assembled.
//
// Slots are keyed by the id of the tune that seeded them and keep their
// relative order for the lifetime of the set. Consumed chains are tombstoned
// in place and only removed by Compact.
type WorkSet struct {
	catalog Catalog
	slots   []*slot
	owner   map[string]*slot
	logger  *slog.Logger
}

// NewWorkSet seeds one unlocked singleton chain per catalog entry.
func NewWorkSet(catalog Catalog, logger *slog.Logger) *WorkSet {
	entries := catalog.All()
	w := &WorkSet{
		catalog: catalog,
		slots:   make([]*slot, 0, len(entries)),
		owner:   make(map[string]*slot, len(entries)),
		logger:  logging.NewComponentLogger(logger, "assembly"),
	}
	for _, entry := range entries {
		s := &slot{key: entry.Tune.ID, chain: tunes.NewSingleton(entry.Tune.ID, entry.Tune.Name)}
		w.slots = append(w.slots, s)
		w.owner[entry.Tune.ID] = s
	}
	return w
}

// Compact drops tombstoned slots, preserving the order of the survivors.
func (w *WorkSet) Compact() {
	live := w.slots[:0]
	for _, s := range w.slots {
		if !s.dead {
			live = append(live, s)
		}
	}
	for i := len(live); i < len(w.slots); i++ {
		w.slots[i] = nil
	}
	w.slots = live
}

// Len reports the number of live chains.
func (w *WorkSet) Len() int {
	n := 0
	for _, s := range w.slots {
		if !s.dead {
			n++
		}
	}
	return n
}

// Chains returns copies of the live chains in work-set order.
func (w *WorkSet) Chains() []tunes.Chain {
	out := make([]tunes.Chain, 0, len(w.slots))
	for _, s := range w.slots {
		if s.dead {
			continue
		}
		out = append(out, s.chain.Clone())
	}
	return out
}

// Keys returns the stable keys of the live chains in work-set order.
func (w *WorkSet) Keys() []string {
	out := make([]string, 0, len(w.slots))
	for _, s := range w.slots {
		if !s.dead {
			out = append(out, s.key)
		}
	}
	return out
}

// live returns the slot currently holding tune id, or nil.
func (w *WorkSet) live(id string) *slot {
	s, ok := w.owner[id]
	if !ok || s.dead {
		return nil
	}
	return s
}

// withTail returns the live slot whose chain ends in id.
func (w *WorkSet) withTail(id string) *slot {
	s := w.live(id)
	if s == nil || s.chain.Tail() != id {
		return nil
	}
	return s
}

// withHead returns the live slot whose chain starts with id.
func (w *WorkSet) withHead(id string) *slot {
	s := w.live(id)
	if s == nil || s.chain.Head() != id {
		return nil
	}
	return s
}

// absorb tombstones src after its only tune moved into dst.
func (w *WorkSet) absorb(src, dst *slot) {
	src.dead = true
	for _, t := range src.chain.Tunes {
		w.owner[t.ID] = dst
	}
}
