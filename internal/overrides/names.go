package overrides

import (
	"tunesets/internal/textutil"
	"tunesets/internal/tunes"
)

// DefaultNameThreshold is the title similarity below which an override
// name is reported as disagreeing with the catalog.
const DefaultNameThreshold = 0.5

// NameMismatch is an override link whose NextName does not resemble the
// catalog title for NextID.
type NameMismatch struct {
	Link        tunes.Link
	CatalogName string
	Similarity  float64
}

// Lookup resolves a tune id to its catalog entry.
type Lookup interface {
	Get(id string) (tunes.Entry, bool)
}

// CheckNames compares each link's NextName against the catalog title.
// Links whose NextID is absent from the catalog are skipped; the engine
// drops those on its own.
func CheckNames(links []tunes.Link, catalog Lookup, threshold float64) []NameMismatch {
	var out []NameMismatch
	for _, link := range links {
		entry, ok := catalog.Get(link.NextID)
		if !ok || entry.Tune.Name == "" {
			continue
		}
		score := textutil.TitleSimilarity(link.NextName, entry.Tune.Name)
		if score < threshold {
			out = append(out, NameMismatch{Link: link, CatalogName: entry.Tune.Name, Similarity: score})
		}
	}
	return out
}
