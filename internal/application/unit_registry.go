package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/edulytics/go-classrank/infrastructure/units"
	"github.com/edulytics/go-classrank/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.UnitRegistry = (*DefaultUnitRegistry)(nil)

// DefaultUnitRegistry implements the UnitRegistry interface providing
// a factory for creating computation units based on type and configuration.
// It supports dynamic registration of unit factories for custom unit types.
type DefaultUnitRegistry struct {
	// factories maps unit type strings to their factory functions.
	factories map[string]ports.UnitFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultUnitRegistry creates a new unit registry with the standard
// unit types pre-registered: weighted_mean, ranking, and status.
func NewDefaultUnitRegistry() *DefaultUnitRegistry {
	registry := &DefaultUnitRegistry{
		factories: make(map[string]ports.UnitFactory),
	}

	// Register built-in unit types.
	registry.registerBuiltinFactories()

	return registry
}

// registerBuiltinFactories registers the standard unit types provided
// by the grading framework.
func (r *DefaultUnitRegistry) registerBuiltinFactories() {
	r.factories["weighted_mean"] = func(id string, config map[string]any) (ports.Unit, error) {
		unit, err := units.CreateWeightedMeanUnit(id, config)
		if err != nil {
			return nil, err
		}
		return unit, nil
	}

	r.factories["ranking"] = func(id string, config map[string]any) (ports.Unit, error) {
		unit, err := units.CreateRankingUnit(id, config)
		if err != nil {
			return nil, err
		}
		return unit, nil
	}

	r.factories["status"] = func(id string, config map[string]any) (ports.Unit, error) {
		unit, err := units.CreateStatusUnit(id, config)
		if err != nil {
			return nil, err
		}
		return unit, nil
	}
}

// Register adds a factory for the given unit type.
// It returns an error if the type is empty, the factory is nil, or the
// type is already registered.
func (r *DefaultUnitRegistry) Register(unitType string, factory ports.UnitFactory) error {
	if unitType == "" {
		return fmt.Errorf("unit type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[unitType]; exists {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateUnitType, unitType)
	}

	r.factories[unitType] = factory
	return nil
}

// Create instantiates a unit of the given type with the supplied
// configuration. It returns ErrUnknownUnitType if no factory is registered
// for the type.
func (r *DefaultUnitRegistry) Create(unitType, id string, config map[string]any) (ports.Unit, error) {
	r.mu.RLock()
	factory, exists := r.factories[unitType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ports.ErrUnknownUnitType, unitType)
	}

	unit, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit %s of type %s: %w", id, unitType, err)
	}
	return unit, nil
}

// ListTypes returns the registered unit type names in sorted order.
func (r *DefaultUnitRegistry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
