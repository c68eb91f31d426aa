package render

import (
	"strconv"

	"tunesets/internal/tunes"
)

// Stats describes how a set of chains was reached. It mirrors the fields of
// an assembly result the summary cares about.
type Stats struct {
	Passes           int
	Merged           int
	Relaxed          bool
	Converged        bool
	OverridesApplied int
	OverridesDropped int
	CacheUsed        bool
}

// Summary renders a two-column table describing chains and stats.
func Summary(chains []tunes.Chain, stats Stats) string {
	byLength := make([]int, tunes.MaxChainLength+1)
	locked, tuneCount := 0, 0
	for _, chain := range chains {
		if n := chain.Len(); n < len(byLength) {
			byLength[n]++
		}
		if chain.Locked {
			locked++
		}
		tuneCount += chain.Len()
	}

	rows := [][]string{
		{"Tunes", strconv.Itoa(tuneCount)},
		{"Sets", strconv.Itoa(len(chains))},
	}
	for n := tunes.MaxChainLength; n >= 1; n-- {
		label := strconv.Itoa(n) + "-tune sets"
		if n == 1 {
			label = "Unmatched tunes"
		}
		rows = append(rows, []string{label, strconv.Itoa(byLength[n])})
	}
	rows = append(rows,
		[]string{"Curated sets", strconv.Itoa(locked)},
		[]string{"Override links applied", strconv.Itoa(stats.OverridesApplied)},
		[]string{"Override links dropped", strconv.Itoa(stats.OverridesDropped)},
		[]string{"Merge passes", strconv.Itoa(stats.Passes)},
		[]string{"Automatic merges", strconv.Itoa(stats.Merged)},
		[]string{"Album matching relaxed", yesNo(stats.Relaxed)},
		[]string{"Settled", yesNo(stats.Converged)},
		[]string{"Adjacency source", source(stats.CacheUsed)},
	)
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func source(cacheUsed bool) string {
	if cacheUsed {
		return "cache"
	}
	return "catalog"
}
