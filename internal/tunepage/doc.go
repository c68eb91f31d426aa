// Package tunepage fetches tune pages from the catalog site and extracts the
// "follows" and "goes into" adjacency tables.
//
// Client applies the site etiquette the catalog expects: a browser
// User-Agent, a fixed number of attempts with a fixed pause between them,
// and a short rest whenever fetching has run for a while without one.
// ParseAdjacency is independent of the network and works on any page body.
package tunepage
