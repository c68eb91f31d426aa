package tunes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewCatalogKeepsFirstSeenOrder(t *testing.T) {
	cat := NewCatalog([]Entry{
		{Tune: TuneRef{ID: "3", Name: "Three"}},
		{Tune: TuneRef{ID: "1", Name: "One"}},
		{Tune: TuneRef{ID: "2", Name: "Two"}},
	})

	var got []string
	for _, entry := range cat.All() {
		got = append(got, entry.Tune.ID)
	}
	if diff := cmp.Diff([]string{"3", "1", "2"}, got); diff != "" {
		t.Fatalf("catalog order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCatalogDuplicateKeepsPositionTakesLaterData(t *testing.T) {
	cat := NewCatalog([]Entry{
		{Tune: TuneRef{ID: "7", Name: "Early"}},
		{Tune: TuneRef{ID: "8", Name: "Other"}},
		{Tune: TuneRef{ID: "7", Name: "Late"}, Follows: []Edge{{NeighborID: "8"}}},
	})

	if cat.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cat.Len())
	}
	all := cat.All()
	if all[0].Tune.ID != "7" || all[0].Tune.Name != "Late" {
		t.Fatalf("expected id 7 first with later data, got %+v", all[0].Tune)
	}
	if len(all[0].Follows) != 1 {
		t.Fatalf("expected later follows list, got %+v", all[0].Follows)
	}
}

func TestCatalogGetMissing(t *testing.T) {
	cat := NewCatalog(nil)
	if _, ok := cat.Get("42"); ok {
		t.Fatal("expected missing id")
	}
	var nilCat *Catalog
	if nilCat.Has("42") || nilCat.Len() != 0 || nilCat.All() != nil {
		t.Fatal("nil catalog should behave as empty")
	}
}

func TestChainAlbumOnlySetOnce(t *testing.T) {
	chain := NewSingleton("1", "One")
	chain.AdoptAlbum("")
	if chain.Album != "" {
		t.Fatalf("empty album should leave chain unknown, got %q", chain.Album)
	}
	chain.AdoptAlbum("X")
	chain.AdoptAlbum("Y")
	if chain.Album != "X" {
		t.Fatalf("album overwritten: got %q", chain.Album)
	}

	chain.Tunes[0].AdoptAlbum("X")
	chain.Tunes[0].AdoptAlbum("Y")
	if chain.Tunes[0].Album != "X" {
		t.Fatalf("tune album overwritten: got %q", chain.Tunes[0].Album)
	}
}

func TestChainHeadTailAndMutation(t *testing.T) {
	chain := NewSingleton("2", "Two")
	chain.Append(TuneRef{ID: "3"})
	chain.Prepend(TuneRef{ID: "1"})

	if chain.Head() != "1" || chain.Tail() != "3" {
		t.Fatalf("unexpected head/tail %s/%s", chain.Head(), chain.Tail())
	}
	if !chain.Full() {
		t.Fatal("expected chain of three to be full")
	}
	if chain.String() != "1/2/3" {
		t.Fatalf("unexpected string %q", chain.String())
	}

	clone := chain.Clone()
	clone.Tunes[0].Name = "changed"
	if chain.Tunes[0].Name == "changed" {
		t.Fatal("clone shares tune storage")
	}
}

func TestRelationString(t *testing.T) {
	if Follows.String() != "follows" || Precedes.String() != "precedes" {
		t.Fatalf("unexpected relation names %s %s", Follows, Precedes)
	}
	entry := Entry{Follows: []Edge{{NeighborID: "a"}}, Precedes: []Edge{{NeighborID: "b"}}}
	if entry.Edges(Follows)[0].NeighborID != "a" || entry.Edges(Precedes)[0].NeighborID != "b" {
		t.Fatal("Edges returned the wrong list")
	}
}
