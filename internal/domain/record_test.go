package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatusFor verifies the academic status thresholds: averages at or
// above the approval threshold are approved, averages at or above the
// recovery threshold go to recovery, and everything below fails.
func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		average  float32
		expected AcademicStatus
	}{
		{name: "well above approval", average: 9.8, expected: StatusApproved},
		{name: "exactly at approval threshold", average: 7.0, expected: StatusApproved},
		{name: "just below approval", average: 6.99, expected: StatusRecovery},
		{name: "exactly at recovery threshold", average: 5.0, expected: StatusRecovery},
		{name: "just below recovery", average: 4.99, expected: StatusFailed},
		{name: "zero average", average: 0.0, expected: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusFor(tt.average, DefaultApprovalThreshold, DefaultRecoveryThreshold)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestStatusFor_CustomThresholds verifies that non-default thresholds are
// honored, e.g. institutions grading on a 0-100 scale.
func TestStatusFor_CustomThresholds(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusFor(75, 70, 50))
	assert.Equal(t, StatusRecovery, StatusFor(60, 70, 50))
	assert.Equal(t, StatusFailed, StatusFor(49.9, 70, 50))
}
