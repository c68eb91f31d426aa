// Package render turns assembled chains into the text listing, the HTML page,
// and the terminal summary table.
//
// Output is a pure function of the chain sequence, so identical runs produce
// byte-identical files.
package render
