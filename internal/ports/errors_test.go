package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("message format", func(t *testing.T) {
		err := NewConfigError("pipeline.yaml", ErrConfigNotFound)

		assert.Equal(t, "config error: key=pipeline.yaml, err=configuration not found", err.Error())
		assert.Equal(t, "pipeline.yaml", err.ConfigKey)
	})

	t.Run("unwraps to underlying error", func(t *testing.T) {
		base := errors.New("permission denied")
		err := NewConfigError("/etc/grading/pipeline.yaml", base)

		assert.True(t, errors.Is(err, base), "Should match base error with Is")
		assert.Equal(t, base, errors.Unwrap(err), "Should unwrap to base error")
	})

	t.Run("matches sentinel through errors.Is", func(t *testing.T) {
		err := NewConfigError("missing.yaml", ErrConfigNotFound)
		assert.True(t, errors.Is(err, ErrConfigNotFound), "Should match ErrConfigNotFound")
	})
}

func TestCommonPortErrors(t *testing.T) {
	tests := []struct {
		err     error
		message string
	}{
		{ErrUnknownUnitType, "unknown unit type"},
		{ErrDuplicateUnitType, "unit type already registered"},
		{ErrConfigNotFound, "configuration not found"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error(), "Error message mismatch")
		})
	}
}
