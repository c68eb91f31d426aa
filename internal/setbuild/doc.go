// Package setbuild runs one end-to-end build: it gathers adjacency data from
// the cache or the catalog site, applies the curated override files, runs the
// assembly engine, and writes the text and HTML listings.
//
// Every run carries a fresh run id in its log context and holds the run lock
// for its whole duration.
package setbuild
