// Package overrides parses hand-curated set files into ordered override links.
//
// Each line of an override file is one set written as slash-separated tokens
// of the form #<id>[<name>...]. Consecutive tokens on a line become links,
// all tagged with the album label of the source file. A token that does not
// match aborts the whole source so no partial set of links is ever applied.
package overrides
