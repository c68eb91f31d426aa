package overrides

import (
	"testing"

	"tunesets/internal/tunes"
)

func TestCheckNamesReportsDisagreeingTitles(t *testing.T) {
	catalog := tunes.NewCatalog([]tunes.Entry{
		{Tune: tunes.TuneRef{ID: "20", Name: "Out on the Ocean"}},
		{Tune: tunes.TuneRef{ID: "30", Name: "Cliffs of Moher, The"}},
	})
	links := []tunes.Link{
		{PrevID: "10", NextID: "20", NextName: "Out on the Ocean"},
		{PrevID: "20", NextID: "30", NextName: "The Cliffs of Moher"},
		{PrevID: "30", NextID: "20", NextName: "Drowsy Maggie"},
		{PrevID: "30", NextID: "99", NextName: "Not in catalog"},
	}

	got := CheckNames(links, catalog, DefaultNameThreshold)
	if len(got) != 1 {
		t.Fatalf("expected one mismatch, got %+v", got)
	}
	if got[0].Link.NextName != "Drowsy Maggie" || got[0].CatalogName != "Out on the Ocean" {
		t.Fatalf("unexpected mismatch %+v", got[0])
	}
	if got[0].Similarity != 0 {
		t.Fatalf("similarity = %v, want 0", got[0].Similarity)
	}
}
