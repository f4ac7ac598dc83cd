// Package application wires grading units into configurable pipelines and
// provides the YAML configuration surface of the engine.
package application

import (
	"gopkg.in/yaml.v3"
)

// PipelineConfig defines the complete specification for a grading pipeline
// and serves as the primary configuration entry point for the system.
// Use PipelineConfig when defining grading workflows that require structured
// execution of multiple computation units in a specific order.
type PipelineConfig struct {
	// Version specifies the configuration schema version using semantic
	// versioning to ensure compatibility across system updates.
	Version string `yaml:"version" validate:"required,semver"`
	// Metadata contains descriptive information about the pipeline
	// including name, tags, and labels for organization and discovery.
	Metadata Metadata `yaml:"metadata" validate:"required"`
	// Units defines the individual computation units that will execute
	// within this pipeline, each with their own configuration.
	Units []UnitConfig `yaml:"units" validate:"required,min=1,dive"`
	// Pipeline specifies the execution order of the configured units.
	Pipeline PipelineTopology `yaml:"pipeline" validate:"required"`
}

// Metadata provides descriptive information about a grading pipeline
// to support organization, discovery, and operational management.
type Metadata struct {
	// Name is the human-readable identifier for this pipeline
	// and must be unique within the deployment scope.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Description provides a detailed explanation of the pipeline's purpose
	// and intended use cases for documentation and discovery.
	Description string `yaml:"description" validate:"max=1000"`
	// Tags are categorical labels that enable filtering and grouping
	// of pipelines by functional domain or operational characteristics.
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
	// Labels are arbitrary key-value pairs that provide flexible metadata
	// for integration with external systems and custom categorization.
	Labels map[string]string `yaml:"labels" validate:"max=50"`
}

// UnitConfig defines the specification for a single computation unit
// within a grading pipeline.
type UnitConfig struct {
	// ID is the unique identifier for this unit within the pipeline
	// and must be alphanumeric for safe referencing in topologies.
	ID string `yaml:"id" validate:"required,alphanum,min=1,max=100"`
	// Type specifies the computation unit implementation to instantiate,
	// determining the available parameters and execution behavior.
	Type string `yaml:"type" validate:"required,oneof=weighted_mean ranking status custom"`
	// Parameters contains type-specific configuration as flexible YAML
	// that will be validated according to the unit type requirements.
	Parameters yaml.Node `yaml:"parameters"`
}

// PipelineTopology specifies the execution order of units within a
// grading pipeline. Units execute sequentially in the listed order, with
// each unit's output state feeding the next.
type PipelineTopology struct {
	// Order lists unit IDs in execution order. Every listed ID must
	// reference a configured unit.
	Order []string `yaml:"order" validate:"required,min=1,dive,required"`
}
