package tunes

import (
	"fmt"
	"strings"
)

// MaxChainLength bounds every chain the engine produces.
const MaxChainLength = 3

// Relation identifies which adjacency list an edge came from.
type Relation int

const (
	// Follows edges on tune X name tunes that may appear immediately before X.
	Follows Relation = iota + 1
	// Precedes edges on tune X name tunes that may appear immediately after X
	// (the catalog's "goes into" table).
	Precedes
)

func (r Relation) String() string {
	switch r {
	case Follows:
		return "follows"
	case Precedes:
		return "precedes"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// TuneRef is one tune as it sits inside a chain. Album is empty when unknown.
type TuneRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Album string `json:"album,omitempty"`
}

// AdoptAlbum sets the album when it is still unknown. A known album is never
// overwritten.
func (t *TuneRef) AdoptAlbum(album string) {
	if t.Album == "" {
		t.Album = album
	}
}

// Edge is a directed adjacency hint toward a neighbouring tune.
type Edge struct {
	NeighborID   string `json:"tune_id"`
	NeighborName string `json:"tune_name"`
	Album        string `json:"from_album,omitempty"`
}

// Entry is the catalog record for one tune id.
type Entry struct {
	Tune     TuneRef `json:"tune"`
	Follows  []Edge  `json:"follows"`
	Precedes []Edge  `json:"goes_into"`
}

// Edges returns the ordered edge list for the relation.
func (e Entry) Edges(rel Relation) []Edge {
	switch rel {
	case Follows:
		return e.Follows
	case Precedes:
		return e.Precedes
	default:
		return nil
	}
}

// Chain is an ordered set of one to MaxChainLength tunes.
type Chain struct {
	Tunes  []TuneRef `json:"tunes"`
	Locked bool      `json:"locked"`
	Album  string    `json:"album,omitempty"`
}

// NewSingleton returns an unlocked chain holding only tune, with no album.
func NewSingleton(id, name string) *Chain {
	return &Chain{Tunes: []TuneRef{{ID: id, Name: name}}}
}

// Len reports the number of tunes in the chain.
func (c *Chain) Len() int { return len(c.Tunes) }

// Full reports whether the chain has reached MaxChainLength.
func (c *Chain) Full() bool { return len(c.Tunes) >= MaxChainLength }

// Head returns the first tune id.
func (c *Chain) Head() string {
	if len(c.Tunes) == 0 {
		return ""
	}
	return c.Tunes[0].ID
}

// Tail returns the last tune id.
func (c *Chain) Tail() string {
	if len(c.Tunes) == 0 {
		return ""
	}
	return c.Tunes[len(c.Tunes)-1].ID
}

// AdoptAlbum sets the chain album when it is still unknown.
func (c *Chain) AdoptAlbum(album string) {
	if c.Album == "" {
		c.Album = album
	}
}

// Append adds tune at the tail.
func (c *Chain) Append(tune TuneRef) {
	c.Tunes = append(c.Tunes, tune)
}

// Prepend adds tune at the head.
func (c *Chain) Prepend(tune TuneRef) {
	c.Tunes = append([]TuneRef{tune}, c.Tunes...)
}

// IDs lists the tune ids in chain order.
func (c *Chain) IDs() []string {
	ids := make([]string, len(c.Tunes))
	for i, t := range c.Tunes {
		ids[i] = t.ID
	}
	return ids
}

// Clone returns a deep copy.
func (c *Chain) Clone() Chain {
	out := Chain{Locked: c.Locked, Album: c.Album}
	out.Tunes = make([]TuneRef, len(c.Tunes))
	copy(out.Tunes, c.Tunes)
	return out
}

func (c *Chain) String() string {
	return strings.Join(c.IDs(), "/")
}

// Link is one explicit prev -> next pairing taken from an override source.
type Link struct {
	PrevID   string
	NextID   string
	NextName string
	Album    string
	Source   string
	Line     int
}
