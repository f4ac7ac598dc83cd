package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSortByPerformance verifies in-place descending ordering by score,
// the trivial-input no-op, and multiset preservation.
func TestSortByPerformance(t *testing.T) {
	tests := []struct {
		name     string
		records  []PerformanceRecord
		expected []PerformanceRecord
	}{
		{
			name: "orders class by descending score",
			records: []PerformanceRecord{
				{StudentID: 101, Score: 8.5},
				{StudentID: 102, Score: 6.2},
				{StudentID: 103, Score: 9.8},
				{StudentID: 104, Score: 7.5},
			},
			expected: []PerformanceRecord{
				{StudentID: 103, Score: 9.8},
				{StudentID: 101, Score: 8.5},
				{StudentID: 104, Score: 7.5},
				{StudentID: 102, Score: 6.2},
			},
		},
		{
			name: "already sorted input is unchanged",
			records: []PerformanceRecord{
				{StudentID: 1, Score: 9.0},
				{StudentID: 2, Score: 7.0},
				{StudentID: 3, Score: 5.0},
			},
			expected: []PerformanceRecord{
				{StudentID: 1, Score: 9.0},
				{StudentID: 2, Score: 7.0},
				{StudentID: 3, Score: 5.0},
			},
		},
		{
			name: "reverse sorted input is reversed",
			records: []PerformanceRecord{
				{StudentID: 1, Score: 1.0},
				{StudentID: 2, Score: 2.0},
				{StudentID: 3, Score: 3.0},
			},
			expected: []PerformanceRecord{
				{StudentID: 3, Score: 3.0},
				{StudentID: 2, Score: 2.0},
				{StudentID: 1, Score: 1.0},
			},
		},
		{
			name:     "single record is a no-op",
			records:  []PerformanceRecord{{StudentID: 7, Score: 4.2}},
			expected: []PerformanceRecord{{StudentID: 7, Score: 4.2}},
		},
		{
			name:     "empty slice is a no-op",
			records:  []PerformanceRecord{},
			expected: []PerformanceRecord{},
		},
		{
			name:     "nil slice is a no-op",
			records:  nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortByPerformance(tt.records)
			assert.Equal(t, tt.expected, tt.records)
		})
	}
}

// TestSortByPerformance_NonIncreasingProperty verifies the ordering property
// on an input with duplicates: every adjacent pair must be non-increasing,
// and the multiset of ids must be preserved.
func TestSortByPerformance_NonIncreasingProperty(t *testing.T) {
	records := []PerformanceRecord{
		{StudentID: 1, Score: 5.0},
		{StudentID: 2, Score: 9.1},
		{StudentID: 3, Score: 5.0},
		{StudentID: 4, Score: 0.0},
		{StudentID: 5, Score: 9.1},
		{StudentID: 6, Score: 7.3},
	}

	idsBefore := make(map[int32]int, len(records))
	for _, r := range records {
		idsBefore[r.StudentID]++
	}

	SortByPerformance(records)

	require.True(t, IsRankedByPerformance(records))

	idsAfter := make(map[int32]int, len(records))
	for _, r := range records {
		idsAfter[r.StudentID]++
	}
	assert.Equal(t, idsBefore, idsAfter, "sorting must preserve the record multiset")
}

// TestSortByPerformance_Idempotent verifies that sorting a concrete instance
// twice produces the same sequence as sorting it once.
func TestSortByPerformance_Idempotent(t *testing.T) {
	records := []PerformanceRecord{
		{StudentID: 10, Score: 6.6},
		{StudentID: 11, Score: 8.8},
		{StudentID: 12, Score: 2.2},
		{StudentID: 13, Score: 8.8},
	}

	SortByPerformance(records)
	once := make([]PerformanceRecord, len(records))
	copy(once, records)

	SortByPerformance(records)
	assert.Equal(t, once, records)
}

// TestSortByPerformanceTieBreak verifies that exact score ties are resolved
// by ascending student ID.
func TestSortByPerformanceTieBreak(t *testing.T) {
	records := []PerformanceRecord{
		{StudentID: 42, Score: 7.0},
		{StudentID: 7, Score: 7.0},
		{StudentID: 9, Score: 9.5},
		{StudentID: 21, Score: 7.0},
	}

	SortByPerformanceTieBreak(records)

	expected := []PerformanceRecord{
		{StudentID: 9, Score: 9.5},
		{StudentID: 7, Score: 7.0},
		{StudentID: 21, Score: 7.0},
		{StudentID: 42, Score: 7.0},
	}
	assert.Equal(t, expected, records)
}

// TestIsRankedByPerformance covers the adjacency predicate used by callers
// to assert ordering without re-sorting.
func TestIsRankedByPerformance(t *testing.T) {
	tests := []struct {
		name     string
		records  []PerformanceRecord
		expected bool
	}{
		{
			name:     "empty is ranked",
			records:  nil,
			expected: true,
		},
		{
			name:     "single record is ranked",
			records:  []PerformanceRecord{{StudentID: 1, Score: 3.0}},
			expected: true,
		},
		{
			name: "equal adjacent scores are ranked",
			records: []PerformanceRecord{
				{StudentID: 1, Score: 5.0},
				{StudentID: 2, Score: 5.0},
			},
			expected: true,
		},
		{
			name: "ascending pair is not ranked",
			records: []PerformanceRecord{
				{StudentID: 1, Score: 4.0},
				{StudentID: 2, Score: 5.0},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRankedByPerformance(tt.records))
		})
	}
}
