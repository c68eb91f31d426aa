// Package assembly partitions a tune catalog into short ordered sets.
//
// The engine starts from one singleton chain per catalog entry, applies the
// curated override links (which extend and lock chains), then runs bounded
// greedy merge passes driven by each tune's follows/precedes hints. The first
// passes require album agreement; once a pass makes no progress the album
// constraint is relaxed exactly once, and the next stalled pass ends the run.
//
// Iteration always follows catalog insertion order. "First qualifying
// destination wins" has no other tie-break, so that order is what makes the
// output reproducible.
//
// The engine is single-threaded and performs no I/O. A WorkSet must not be
// shared between goroutines.
package assembly
