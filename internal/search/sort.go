package search

import "sort"

// SortResults sorts results by score (ascending). Equal scores keep their
// relative order, so results built in catalog order stay in catalog order.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
}
