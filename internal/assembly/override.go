package assembly

import (
	"tunesets/internal/logging"
	"tunesets/internal/tunes"
)

// ApplyOverride extends the chain ending in link.PrevID with link.NextID.
//
// The first extension of a singleton stamps the override album on the chain
// and its member and locks the chain against automatic merging. Locked chains
// still accept further override links so multi-hop curated sets can grow.
// The link is dropped, and false returned, when no open chain ends in PrevID
// or when NextID is not a live singleton elsewhere in the set.
func (w *WorkSet) ApplyOverride(link tunes.Link) bool {
	target := w.withTail(link.PrevID)
	if target == nil || target.chain.Full() {
		w.dropLink(link, "anchor_not_found")
		return false
	}
	source := w.live(link.NextID)
	if source == nil || source == target || source.chain.Len() != 1 {
		w.dropLink(link, "next_not_singleton")
		return false
	}

	if target.chain.Len() == 1 {
		target.chain.Tunes[0].AdoptAlbum(link.Album)
		target.chain.AdoptAlbum(link.Album)
		target.chain.Locked = true
	}
	target.chain.Append(tunes.TuneRef{ID: link.NextID, Name: link.NextName, Album: link.Album})
	w.absorb(source, target)
	return true
}

// ApplyOverrides applies links in order and reports how many took effect.
func (w *WorkSet) ApplyOverrides(links []tunes.Link) int {
	applied := 0
	for _, link := range links {
		if w.ApplyOverride(link) {
			applied++
		}
	}
	return applied
}

func (w *WorkSet) dropLink(link tunes.Link, reason string) {
	w.logger.Debug("override link dropped",
		logging.String(logging.FieldEventType, "override_dropped"),
		logging.String(logging.FieldReason, reason),
		logging.String("prev_id", link.PrevID),
		logging.String("next_id", link.NextID),
		logging.String(logging.FieldSource, link.Source),
		logging.Int(logging.FieldLine, link.Line))
}
