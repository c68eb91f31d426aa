package tunes

// Catalog is an insertion-ordered set of entries keyed by tune id.
type Catalog struct {
	order   []string
	entries map[string]Entry
}

// NewCatalog indexes entries by tune id. Order follows the first appearance of
// each id; a repeated id keeps that position but its later data wins.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{
		order:   make([]string, 0, len(entries)),
		entries: make(map[string]Entry, len(entries)),
	}
	for _, entry := range entries {
		id := entry.Tune.ID
		if id == "" {
			continue
		}
		if _, seen := c.entries[id]; !seen {
			c.order = append(c.order, id)
		}
		c.entries[id] = entry
	}
	return c
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.entries[id]
	return entry, ok
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns every entry in catalog order.
func (c *Catalog) All() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len reports the number of distinct tunes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
