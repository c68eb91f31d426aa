// Package textutil compares tune titles.
//
// Titles are folded to lowercase with accents stripped. Articles are
// ignored, so "The Bird in the Bush" and "Bird in the Bush, The" compare
// as the same title. Comparison is cosine similarity over token counts.
package textutil
