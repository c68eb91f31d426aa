package assembly

import (
	"tunesets/internal/tunes"
)

// RunPass makes one sweep over the unlocked singletons, in the order the
// work set held them when the pass began, and returns how many were merged
// into another chain.
//
// A singleton first tries its follows edges (joining the tail of the chain
// ending in that neighbour) and only then its precedes edges (joining the
// head of the chain starting with it). With matchAlbums set, a destination
// that already has an album only accepts edges from the same album.
func (w *WorkSet) RunPass(matchAlbums bool) int {
	snapshot := make([]*slot, len(w.slots))
	copy(snapshot, w.slots)

	merged := 0
	for _, s := range snapshot {
		if s.dead || s.chain.Locked || s.chain.Len() != 1 {
			continue
		}
		entry, ok := w.catalog.Get(s.chain.Head())
		if !ok {
			continue
		}
		if w.merge(s, entry, tunes.Follows, matchAlbums) || w.merge(s, entry, tunes.Precedes, matchAlbums) {
			merged++
		}
	}
	return merged
}

func (w *WorkSet) merge(src *slot, entry tunes.Entry, rel tunes.Relation, matchAlbums bool) bool {
	tune := src.chain.Tunes[0]
	for _, edge := range entry.Edges(rel) {
		if _, known := w.catalog.Get(edge.NeighborID); !known {
			continue
		}
		var dst *slot
		if rel == tunes.Follows {
			dst = w.withTail(edge.NeighborID)
		} else {
			dst = w.withHead(edge.NeighborID)
		}
		if dst == nil || dst == src || dst.chain.Locked || dst.chain.Full() {
			continue
		}
		if matchAlbums && dst.chain.Album != "" && dst.chain.Album != edge.Album {
			continue
		}

		if dst.chain.Len() == 1 {
			dst.chain.Tunes[0].AdoptAlbum(edge.Album)
		}
		placed := tunes.TuneRef{ID: tune.ID, Name: tune.Name, Album: edge.Album}
		if rel == tunes.Follows {
			dst.chain.Append(placed)
		} else {
			dst.chain.Prepend(placed)
		}
		dst.chain.AdoptAlbum(edge.Album)
		w.absorb(src, dst)
		return true
	}
	return false
}
