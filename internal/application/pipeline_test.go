package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulytics/go-classrank/internal/domain"
	"github.com/edulytics/go-classrank/internal/ports"
)

// stubUnit is a minimal ports.Unit for pipeline tests.
type stubUnit struct {
	name string
	fn   func(domain.State) (domain.State, error)
}

func (s *stubUnit) Name() string { return s.name }

func (s *stubUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
	return s.fn(state)
}

func (s *stubUnit) Validate() error { return nil }

// appendUnit returns a stub unit that appends its name to a raw trace key,
// making execution order observable.
func appendUnit(name string) ports.Unit {
	return &stubUnit{
		name: name,
		fn: func(state domain.State) (domain.State, error) {
			trace, _ := state.GetRaw("trace")
			seq, _ := trace.([]string)
			return state.WithRaw("trace", append(seq, name)), nil
		},
	}
}

// TestPipeline_Execute verifies sequential execution order and state
// threading between units.
func TestPipeline_Execute(t *testing.T) {
	pipeline := NewPipeline("order-test")
	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("first"))))
	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("second"))))
	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("third"))))
	assert.Equal(t, 3, pipeline.Len())

	final, err := pipeline.Execute(context.Background(), domain.NewState())
	require.NoError(t, err)

	trace, ok := final.GetRaw("trace")
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second", "third"}, trace)
}

// TestPipeline_Execute_FailurePropagation verifies that a failing unit
// stops execution and surfaces its ID in the error.
func TestPipeline_Execute_FailurePropagation(t *testing.T) {
	boom := errors.New("boom")
	failing := &stubUnit{
		name: "broken",
		fn: func(state domain.State) (domain.State, error) {
			return state, boom
		},
	}

	pipeline := NewPipeline("failure-test")
	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("ok"))))
	require.NoError(t, pipeline.Add(WrapUnit(failing)))
	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("unreached"))))

	final, err := pipeline.Execute(context.Background(), domain.NewState())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")

	// The state reflects only the units that ran before the failure.
	trace, ok := final.GetRaw("trace")
	require.True(t, ok)
	assert.Equal(t, []string{"ok"}, trace)
}

// TestPipeline_Execute_ContextCancellation verifies the pipeline stops
// between units when the context is cancelled.
func TestPipeline_Execute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cancelling := &stubUnit{
		name: "canceller",
		fn: func(state domain.State) (domain.State, error) {
			cancel()
			return state, nil
		},
	}

	pipeline := NewPipeline("cancel-test")
	require.NoError(t, pipeline.Add(WrapUnit(cancelling)))
	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("unreached"))))

	final, err := pipeline.Execute(ctx, domain.NewState())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := final.GetRaw("trace")
	assert.False(t, ok, "the unit after cancellation must not run")
}

// TestPipeline_Add verifies duplicate and nil rejection.
func TestPipeline_Add(t *testing.T) {
	pipeline := NewPipeline("add-test")

	require.NoError(t, pipeline.Add(WrapUnit(appendUnit("u"))))

	err := pipeline.Add(WrapUnit(appendUnit("u")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	err = pipeline.Add(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil executable")
}
