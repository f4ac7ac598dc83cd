package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// paramsNode builds a yaml.Node from inline YAML for parameter validation
// tests.
func paramsNode(t *testing.T, src string) yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.NotEmpty(t, doc.Content)
	return *doc.Content[0]
}

// TestValidateUnitParameters covers per-type parameter rules and the
// absent-parameters case.
func TestValidateUnitParameters(t *testing.T) {
	tests := []struct {
		name          string
		unitType      string
		params        string
		expectedError string
	}{
		{
			name:     "weighted_mean accepts integer scale",
			unitType: "weighted_mean",
			params:   "scale_max: 100",
		},
		{
			name:     "weighted_mean accepts float scale",
			unitType: "weighted_mean",
			params:   "scale_max: 10.0",
		},
		{
			name:          "weighted_mean rejects non-positive scale",
			unitType:      "weighted_mean",
			params:        "scale_max: 0",
			expectedError: "must be positive",
		},
		{
			name:          "weighted_mean rejects string scale",
			unitType:      "weighted_mean",
			params:        "scale_max: ten",
			expectedError: "must be a number",
		},
		{
			name:     "ranking accepts student_id tie breaker",
			unitType: "ranking",
			params:   "tie_breaker: student_id",
		},
		{
			name:          "ranking rejects unknown tie breaker",
			unitType:      "ranking",
			params:        "tie_breaker: alphabetical",
			expectedError: "tie_breaker",
		},
		{
			name:          "ranking rejects non-boolean flag",
			unitType:      "ranking",
			params:        "reject_non_finite: maybe",
			expectedError: "must be a boolean",
		},
		{
			name:     "status accepts consistent thresholds",
			unitType: "status",
			params:   "approval_threshold: 7\nrecovery_threshold: 5",
		},
		{
			name:          "status rejects inverted thresholds",
			unitType:      "status",
			params:        "approval_threshold: 5\nrecovery_threshold: 7",
			expectedError: "must not exceed",
		},
		{
			name:          "status rejects negative threshold",
			unitType:      "status",
			params:        "approval_threshold: -1",
			expectedError: "non-negative",
		},
		{
			name:     "custom type skips validation",
			unitType: "custom",
			params:   "anything: goes",
		},
		{
			name:          "unknown type is rejected",
			unitType:      "percentile",
			params:        "p: 95",
			expectedError: "unknown unit type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnitParameters(tt.unitType, paramsNode(t, tt.params))
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestValidateUnitParameters_AbsentNode verifies a zero-valued parameters
// node means defaults and passes for any known type.
func TestValidateUnitParameters_AbsentNode(t *testing.T) {
	var absent yaml.Node
	assert.NoError(t, ValidateUnitParameters("weighted_mean", absent))
	assert.NoError(t, ValidateUnitParameters("ranking", absent))
	assert.NoError(t, ValidateUnitParameters("status", absent))
}
