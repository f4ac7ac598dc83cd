package domain

import "sort"

// SortByPerformance reorders records in place so that scores are
// non-increasing (best first).
//
// The sort is NOT stable: when two records carry exactly equal scores their
// relative order is unspecified and may differ between runs. Callers that
// need deterministic tie handling should use SortByPerformanceTieBreak.
//
// Zero or one record is already sorted; the comparator is never invoked.
// A nil slice is the empty case. The record multiset is preserved and the
// function allocates nothing beyond what the sort itself requires.
func SortByPerformance(records []PerformanceRecord) {
	if len(records) <= 1 {
		return
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
}

// SortByPerformanceTieBreak behaves like SortByPerformance but breaks exact
// score ties by ascending student ID, making the final order deterministic.
func SortByPerformanceTieBreak(records []PerformanceRecord) {
	if len(records) <= 1 {
		return
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].StudentID < records[j].StudentID
	})
}

// IsRankedByPerformance reports whether records are already in
// non-increasing score order.
func IsRankedByPerformance(records []PerformanceRecord) bool {
	for i := 1; i < len(records); i++ {
		if records[i-1].Score < records[i].Score {
			return false
		}
	}
	return true
}
