package testutils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulytics/go-classrank/internal/domain"
)

// TestGenerateClassDataset verifies size, unique sequential IDs, and score
// bounds of a generated dataset.
func TestGenerateClassDataset(t *testing.T) {
	dataset := GenerateClassDataset(40, 42)

	require.NoError(t, ValidateClassDataset(dataset))
	require.Len(t, dataset.Students, 40)
	assert.Equal(t, 40, dataset.Metadata.Size)
	assert.Equal(t, int64(42), dataset.Metadata.Seed)

	for i, s := range dataset.Students {
		assert.Equal(t, int32(101+i), s.ID)
		assert.NotEmpty(t, s.Name)
		require.Len(t, s.Scores, 3)
		require.Len(t, s.Weights, 3)
		for _, score := range s.Scores {
			assert.GreaterOrEqual(t, score, float32(0))
			assert.LessOrEqual(t, score, float32(10))
		}
	}
}

// TestGenerateClassDataset_Deterministic verifies the same seed yields the
// same dataset.
func TestGenerateClassDataset_Deterministic(t *testing.T) {
	a := GenerateClassDataset(10, 7)
	b := GenerateClassDataset(10, 7)
	assert.Equal(t, a, b)
}

// TestComputeDatasetStatistics verifies averages and status tallies.
func TestComputeDatasetStatistics(t *testing.T) {
	dataset := &ClassDataset{
		Metadata: DatasetMetadata{Name: "fixture", Version: "1.0.0", Size: 3},
		Students: []DatasetStudent{
			{ID: 1, Name: "Aprovada", Scores: []float32{9, 9, 9}, Weights: []float32{2, 3, 5}},
			{ID: 2, Name: "Recuperação", Scores: []float32{6, 6, 6}, Weights: []float32{2, 3, 5}},
			{ID: 3, Name: "Reprovado", Scores: []float32{2, 3, 2}, Weights: []float32{2, 3, 5}},
		},
	}

	stats, err := ComputeDatasetStatistics(dataset)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalStudents)
	assert.InDelta(t, 9.0, stats.MaxAverage, 1e-4)
	assert.InDelta(t, 2.3, stats.MinAverage, 1e-4)
	assert.Equal(t, 1, stats.StatusCount[domain.StatusApproved])
	assert.Equal(t, 1, stats.StatusCount[domain.StatusRecovery])
	assert.Equal(t, 1, stats.StatusCount[domain.StatusFailed])
}

// TestValidateClassDataset covers the structural failure modes.
func TestValidateClassDataset(t *testing.T) {
	tests := []struct {
		name          string
		dataset       *ClassDataset
		expectedError string
	}{
		{
			name:          "nil dataset",
			dataset:       nil,
			expectedError: "cannot be nil",
		},
		{
			name: "no students",
			dataset: &ClassDataset{
				Metadata: DatasetMetadata{Size: 0},
			},
			expectedError: "at least one student",
		},
		{
			name: "size mismatch",
			dataset: &ClassDataset{
				Metadata: DatasetMetadata{Size: 2},
				Students: []DatasetStudent{
					{ID: 1, Name: "Ana", Scores: []float32{5}, Weights: []float32{1}},
				},
			},
			expectedError: "does not match student count",
		},
		{
			name: "duplicate ID",
			dataset: &ClassDataset{
				Metadata: DatasetMetadata{Size: 2},
				Students: []DatasetStudent{
					{ID: 1, Name: "Ana", Scores: []float32{5}, Weights: []float32{1}},
					{ID: 1, Name: "Bruno", Scores: []float32{5}, Weights: []float32{1}},
				},
			},
			expectedError: "duplicate ID",
		},
		{
			name: "length mismatch",
			dataset: &ClassDataset{
				Metadata: DatasetMetadata{Size: 1},
				Students: []DatasetStudent{
					{ID: 1, Name: "Ana", Scores: []float32{5, 6}, Weights: []float32{1}},
				},
			},
			expectedError: "2 scores but 1 weights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClassDataset(tt.dataset)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

// TestSaveLoadClassDataset verifies the YAML round trip through a temp dir.
func TestSaveLoadClassDataset(t *testing.T) {
	dataset := GenerateClassDataset(5, 99)
	path := filepath.Join(t.TempDir(), "datasets", "class.yaml")

	require.NoError(t, SaveClassDataset(dataset, path))

	loaded, err := LoadClassDataset(path)
	require.NoError(t, err)
	assert.Equal(t, dataset, loaded)

	_, err = LoadClassDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
