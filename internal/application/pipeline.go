package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/edulytics/go-classrank/internal/domain"
	"github.com/edulytics/go-classrank/internal/ports"
)

// Pipeline is a sequential execution container that processes executables
// in strict order, where each executable's output becomes the input for
// the next executable in the sequence.
// Use Pipeline when grading logic requires specific sequencing or when
// executables have data dependencies that must be respected.
type Pipeline struct {
	// id is the unique identifier for this pipeline, used for error
	// reporting and execution planning.
	id string
	// executables contains the ordered list of components that will execute
	// sequentially, with state flowing from one to the next.
	executables []ports.Executable
	// idSet tracks executable IDs for O(1) duplicate detection.
	idSet map[string]struct{}
	// mu provides thread-safe access to the executables slice during
	// concurrent read and write operations.
	mu sync.RWMutex
}

// NewPipeline creates a new sequential execution pipeline with the specified
// identifier, ready to accept executable components.
// The pipeline will execute added components in the order they were added.
func NewPipeline(id string) *Pipeline {
	return &Pipeline{
		id:          id,
		executables: make([]ports.Executable, 0),
		idSet:       make(map[string]struct{}),
	}
}

// Execute processes all executables in this pipeline sequentially,
// passing the output state from each executable as input to the next.
// Execute respects context cancellation and returns immediately if the
// context is cancelled between executable runs.
// Execute returns an error if any executable fails, including the
// executable ID in the error message for debugging.
func (p *Pipeline) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	p.mu.RLock()
	executables := make([]ports.Executable, len(p.executables))
	copy(executables, p.executables)
	p.mu.RUnlock()

	currentState := state
	for _, exec := range executables {
		select {
		case <-ctx.Done():
			return currentState, ctx.Err()
		default:
			newState, err := exec.Execute(ctx, currentState)
			if err != nil {
				return currentState, fmt.Errorf("pipeline %s: execution failed at %s: %w", p.id, exec.ID(), err)
			}
			currentState = newState
		}
	}

	return currentState, nil
}

// ID returns the unique string identifier for this pipeline.
func (p *Pipeline) ID() string {
	return p.id
}

// Add appends an executable to the end of this pipeline's execution
// sequence, maintaining the order in which executables will be processed.
// Add returns an error if the executable is nil or if an executable
// with the same ID already exists in the pipeline.
// Add is safe for concurrent use with Execute.
func (p *Pipeline) Add(exec ports.Executable) error {
	if exec == nil {
		return fmt.Errorf("cannot add nil executable to pipeline")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.idSet[exec.ID()]; exists {
		return fmt.Errorf("executable with ID %s already exists in pipeline %s", exec.ID(), p.id)
	}

	p.executables = append(p.executables, exec)
	p.idSet[exec.ID()] = struct{}{}
	return nil
}

// Len returns the number of executables currently in the pipeline.
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.executables)
}

// unitAdapter lifts a ports.Unit into the ports.Executable contract so
// units can be added to pipelines directly.
type unitAdapter struct {
	unit ports.Unit
}

// WrapUnit adapts a unit to the Executable interface.
func WrapUnit(unit ports.Unit) ports.Executable {
	return &unitAdapter{unit: unit}
}

// ID returns the wrapped unit's name.
func (a *unitAdapter) ID() string { return a.unit.Name() }

// Execute delegates to the wrapped unit.
func (a *unitAdapter) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	return a.unit.Execute(ctx, state)
}
