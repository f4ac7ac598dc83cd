// Package units provides the grading units that implement the ports.Unit
// interface for the go-classrank grading engine.
package units

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// TieBreaker represents the strategy for ordering records that carry
// exactly equal scores during ranking.
type TieBreaker string

// Supported tie-breaking strategies for the ranking unit.
const (
	// TieNone leaves the relative order of tied records unspecified.
	// The underlying sort is not stable, so ties may be reordered
	// arbitrarily between runs. This is the default and matches the
	// documented ranking contract.
	TieNone TieBreaker = "none"

	// TieStudentID orders tied records by ascending student ID,
	// making the full ranking deterministic.
	TieStudentID TieBreaker = "student_id"
)

// MaxRecords caps the number of records a single unit execution accepts.
// This bounds memory usage when configurations come from untrusted input.
const MaxRecords = 100_000

// Common errors returned by grading units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrNoScores is returned when no scores are present for computation.
	ErrNoScores = errors.New("no scores provided")

	// ErrNonFiniteScore is returned when a score or weight is NaN or infinite.
	ErrNonFiniteScore = errors.New("score or weight is not finite")

	// ErrScoreOutOfRange is returned when a score falls outside the
	// configured grading scale.
	ErrScoreOutOfRange = errors.New("score outside grading scale")

	// ErrZeroWeightSum is returned when the weight sum is zero and the unit
	// is configured to treat that as an error instead of reporting the
	// zero-average convention.
	ErrZeroWeightSum = errors.New("weights sum to zero")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// floatParam reads a numeric value from a factory configuration map.
// YAML decoding produces int for whole numbers and float64 otherwise,
// so both are accepted.
func floatParam(config map[string]any, key string) (float32, bool) {
	switch v := config[key].(type) {
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int64:
		return float32(v), true
	default:
		return 0, false
	}
}
