// Package tunes holds the data model shared by every stage of a set build:
// tune references, adjacency edges, catalog entries, chains, and override
// links.
//
// The ordered Catalog preserves first-seen tune order. That order is the
// tie-break the assembly engine relies on for "first qualifying destination
// wins", so callers must never rebuild a catalog from an unordered map.
//
// ParseSeed reads the tab-separated playlist that enumerates which tunes a
// run materializes.
package tunes
