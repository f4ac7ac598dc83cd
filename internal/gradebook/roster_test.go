package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulytics/go-classrank/internal/domain"
)

func seedRoster(t *testing.T) *Roster {
	t.Helper()

	roster := NewRoster()
	for _, s := range []Student{
		{ID: 101, Name: "Ana Souza"},
		{ID: 102, Name: "Bruno Carvalho"},
		{ID: 103, Name: "Érica Lima"},
		{ID: 104, Name: "Eduardo Lima"},
		{ID: 105, Name: "João Pedro Alves"},
	} {
		require.NoError(t, roster.Add(s))
	}
	return roster
}

// TestRoster_AddGet verifies enrollment, lookup, and duplicate rejection.
func TestRoster_AddGet(t *testing.T) {
	roster := seedRoster(t)
	assert.Equal(t, 5, roster.Len())

	student, ok := roster.Get(103)
	require.True(t, ok)
	assert.Equal(t, "Érica Lima", student.Name)

	_, ok = roster.Get(999)
	assert.False(t, ok)

	err := roster.Add(Student{ID: 101, Name: "Duplicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already enrolled")

	err = roster.Add(Student{ID: 200, Name: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyValue)
	assert.Contains(t, err.Error(), "student 200")
}

// TestRoster_SortedByName verifies locale-aware ordering: accented names
// sort with their unaccented neighbors rather than after 'Z'.
func TestRoster_SortedByName(t *testing.T) {
	roster := seedRoster(t)

	sorted := roster.SortedByName()
	require.Len(t, sorted, 5)

	names := make([]string, len(sorted))
	for i, s := range sorted {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"Ana Souza",
		"Bruno Carvalho",
		"Eduardo Lima",
		"Érica Lima",
		"João Pedro Alves",
	}, names)
}

// TestRoster_SearchByName verifies fuzzy matching, case folding, and
// similarity ordering.
func TestRoster_SearchByName(t *testing.T) {
	roster := seedRoster(t)

	// Exact match regardless of case.
	matches, err := roster.SearchByName("ANA SOUZA", 0.8)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int32(101), matches[0].Student.ID)
	assert.Equal(t, 1.0, matches[0].Similarity)

	// A small typo still matches.
	matches, err = roster.SearchByName("Bruno Carvalo", 0.8)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int32(102), matches[0].Student.ID)
	assert.Less(t, matches[0].Similarity, 1.0)

	// Best match ranks first when several clear the threshold.
	matches, err = roster.SearchByName("Erica Lima", 0.5)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, int32(103), matches[0].Student.ID)

	// Nothing clears an impossible threshold for an unrelated query.
	matches, err = roster.SearchByName("Zuleica Von Teese", 0.9)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

// TestRoster_SearchByName_Validation verifies query and threshold guards.
func TestRoster_SearchByName_Validation(t *testing.T) {
	roster := seedRoster(t)

	_, err := roster.SearchByName("", 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyValue)

	_, err = roster.SearchByName("Ana", 1.5)
	require.Error(t, err)

	_, err = roster.SearchByName("Ana", -0.1)
	require.Error(t, err)
}
