// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/edulytics/go-classrank/internal/domain"
)

// Unit represents the fundamental building block of a grading pipeline.
// Each Unit performs a specific transformation on the grading State,
// enabling composable and reusable grading logic.
// Units should be stateless and thread-safe for concurrent execution.
type Unit interface {
	// Name returns a unique identifier for this unit.
	// The name is used for logging, debugging, and configuration.
	Name() string

	// Execute performs the unit's transformation on the provided State.
	// It returns a new State containing the results of the transformation.
	// The original State should not be modified (immutability principle).
	// Any errors during execution should be returned rather than panicking.
	//
	// The context parameter allows for cancellation and deadline propagation.
	// Units should respect context cancellation and return promptly.
	//
	// Example:
	//
	//	newState, err := unit.Execute(ctx, state)
	//	if err != nil {
	//	    return nil, fmt.Errorf("unit %s failed: %w", unit.Name(), err)
	//	}
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate checks if the unit is properly configured and ready for
	// execution. It is typically called during pipeline construction or
	// before execution. Return nil if validation passes, or an error
	// describing what is invalid.
	Validate() error
}

// Executable is the common contract shared by units and composite
// containers (pipelines) so that both can participate in an execution plan.
type Executable interface {
	// ID returns the unique identifier of this executable within a plan.
	ID() string

	// Execute runs the executable against the given state and returns the
	// resulting state.
	Execute(ctx context.Context, state domain.State) (domain.State, error)
}

// UnitFactory creates a Unit from an identifier and a generic configuration
// map. Factories are registered with a UnitRegistry under a unit type name.
type UnitFactory func(id string, config map[string]any) (Unit, error)

// UnitRegistry provides lookup and construction of units by type name.
// Implementations must be safe for concurrent use.
type UnitRegistry interface {
	// Register adds a factory for the given unit type.
	// Registering a duplicate type is an error.
	Register(unitType string, factory UnitFactory) error

	// Create instantiates a unit of the given type with the supplied
	// configuration.
	Create(unitType, id string, config map[string]any) (Unit, error)

	// ListTypes returns the registered unit type names.
	ListTypes() []string
}
