// Package testutils provides utilities for testing, including synthetic
// class dataset generators. These components are intended for internal use
// within the project's test suites and are not part of the public API.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/edulytics/go-classrank/internal/domain"
)

// defaultAssessmentWeights is the standard NP1/NP2/exam weighting used for
// generated datasets.
var defaultAssessmentWeights = []float32{2.0, 3.0, 5.0}

// ClassDataset represents a synthetic class of students with assessment
// scores, suitable for exercising the grading pipeline end to end.
type ClassDataset struct {
	// Metadata describes the dataset's provenance and size.
	Metadata DatasetMetadata `yaml:"metadata"`

	// Students contains one entry per generated student.
	Students []DatasetStudent `yaml:"students"`
}

// DatasetMetadata describes a generated dataset.
type DatasetMetadata struct {
	// Name is a human-readable dataset name.
	Name string `yaml:"name"`

	// Version is the dataset format version.
	Version string `yaml:"version"`

	// Source records how the dataset was produced.
	Source string `yaml:"source"`

	// Description explains the dataset's intended use.
	Description string `yaml:"description"`

	// Seed is the RNG seed used for generation, kept for reproducibility.
	Seed int64 `yaml:"seed"`

	// Size is the number of students in the dataset.
	Size int `yaml:"student_count"`
}

// DatasetStudent is one synthetic student with their assessment scores.
type DatasetStudent struct {
	// ID uniquely identifies the student within the dataset.
	ID int32 `yaml:"id"`

	// Name is a synthetic full name.
	Name string `yaml:"name"`

	// Scores holds the NP1, NP2, and exam scores in that order.
	Scores []float32 `yaml:"scores"`

	// Weights holds the matching assessment weights.
	Weights []float32 `yaml:"weights"`
}

// DatasetStatistics summarizes a class dataset for quick inspection.
type DatasetStatistics struct {
	// TotalStudents is the number of students in the dataset.
	TotalStudents int

	// MinAverage and MaxAverage bound the weighted averages.
	MinAverage float32
	MaxAverage float32

	// MeanAverage is the arithmetic mean of the weighted averages.
	MeanAverage float32

	// StatusCount tallies students per academic status at the default
	// thresholds.
	StatusCount map[domain.AcademicStatus]int
}

// ValidateClassDataset checks the structural integrity of a dataset:
// non-empty students, unique IDs, and matching score/weight lengths.
func ValidateClassDataset(dataset *ClassDataset) error {
	if dataset == nil {
		return fmt.Errorf("dataset cannot be nil")
	}
	if len(dataset.Students) == 0 {
		return fmt.Errorf("dataset must contain at least one student")
	}
	if dataset.Metadata.Size != len(dataset.Students) {
		return fmt.Errorf("metadata size %d does not match student count %d",
			dataset.Metadata.Size, len(dataset.Students))
	}

	seen := make(map[int32]struct{}, len(dataset.Students))
	for i, s := range dataset.Students {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("student %d: duplicate ID %d", i, s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Name == "" {
			return fmt.Errorf("student %d: name cannot be empty", i)
		}
		if len(s.Scores) == 0 {
			return fmt.Errorf("student %d: scores cannot be empty", i)
		}
		if len(s.Scores) != len(s.Weights) {
			return fmt.Errorf("student %d: %d scores but %d weights",
				i, len(s.Scores), len(s.Weights))
		}
	}
	return nil
}

// ComputeDatasetStatistics computes summary statistics for a dataset. The
// dataset is assumed to have passed ValidateClassDataset.
func ComputeDatasetStatistics(dataset *ClassDataset) (*DatasetStatistics, error) {
	if err := ValidateClassDataset(dataset); err != nil {
		return nil, err
	}

	stats := &DatasetStatistics{
		TotalStudents: len(dataset.Students),
		StatusCount:   make(map[domain.AcademicStatus]int),
	}

	var sum float32
	for i, s := range dataset.Students {
		average, err := domain.WeightedAverage(s.Scores, s.Weights)
		if err != nil {
			return nil, fmt.Errorf("student %d: %w", s.ID, err)
		}

		if i == 0 || average < stats.MinAverage {
			stats.MinAverage = average
		}
		if i == 0 || average > stats.MaxAverage {
			stats.MaxAverage = average
		}
		sum += average

		status := domain.StatusFor(average,
			domain.DefaultApprovalThreshold, domain.DefaultRecoveryThreshold)
		stats.StatusCount[status]++
	}
	stats.MeanAverage = sum / float32(len(dataset.Students))

	return stats, nil
}

// SaveClassDataset writes a dataset to the given path as YAML, creating
// parent directories as needed.
func SaveClassDataset(dataset *ClassDataset, path string) error {
	if err := ValidateClassDataset(dataset); err != nil {
		return fmt.Errorf("refusing to save invalid dataset: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write dataset to %s: %w", path, err)
	}
	return nil
}

// LoadClassDataset reads and validates a dataset from a YAML file.
func LoadClassDataset(path string) (*ClassDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset from %s: %w", path, err)
	}

	var dataset ClassDataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ValidateClassDataset(&dataset); err != nil {
		return nil, fmt.Errorf("invalid dataset in %s: %w", path, err)
	}
	return &dataset, nil
}
