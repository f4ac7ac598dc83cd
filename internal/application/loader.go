package application

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/edulytics/go-classrank/internal/domain"
	"github.com/edulytics/go-classrank/internal/ports"
)

// PipelineLoader parses, validates, and compiles grading pipelines from
// YAML configuration. It is safe for concurrent use.
type PipelineLoader struct {
	validator *validator.Validate
	registry  ports.UnitRegistry
}

// NewPipelineLoader creates a loader backed by the given unit registry.
// It registers the custom validators the configuration schema depends on.
func NewPipelineLoader(registry ports.UnitRegistry) (*PipelineLoader, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}

	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, err
	}

	return &PipelineLoader{
		validator: v,
		registry:  registry,
	}, nil
}

// LoadFromFile loads and compiles a grading pipeline from a YAML file.
// A missing file is reported as a ConfigError wrapping ErrConfigNotFound so
// callers can distinguish it from a malformed one.
func (pl *PipelineLoader) LoadFromFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.NewConfigError(path, ports.ErrConfigNotFound)
		}
		return nil, ports.NewConfigError(path, err)
	}
	return pl.Load(data)
}

// LoadFromReader loads and compiles a grading pipeline from an io.Reader,
// supporting any source that implements the Reader interface.
func (pl *PipelineLoader) LoadFromReader(r io.Reader) (*Pipeline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return pl.Load(data)
}

// Load parses YAML data into a PipelineConfig, validates it, and compiles
// it into an executable Pipeline.
func (pl *PipelineLoader) Load(data []byte) (*Pipeline, error) {
	config, err := pl.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	if err := pl.ValidateConfig(config); err != nil {
		return nil, err
	}
	return pl.Compile(config)
}

// ParseYAML unmarshals YAML byte data into a structured PipelineConfig.
// ParseYAML uses strict decoding to detect unknown fields, preventing
// configuration typos from being silently ignored.
func (pl *PipelineLoader) ParseYAML(data []byte) (*PipelineConfig, error) {
	var config PipelineConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Strict mode - fail on unknown fields.

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &config, nil
}

// ValidateConfig performs comprehensive validation on a parsed pipeline
// configuration, including both struct field validation and semantic
// validation of relationships between configuration elements.
func (pl *PipelineLoader) ValidateConfig(config *PipelineConfig) error {
	if err := pl.validator.Struct(config); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}
	if err := pl.validateSemantics(config); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}
	return nil
}

// validateSemantics performs domain-specific validation rules that
// cannot be expressed through struct tags: unit ID uniqueness, execution
// order referencing only configured units, and per-type parameter checks.
// All failures are collected into a single ValidationError so a broken
// configuration is reported in one pass.
func (pl *PipelineLoader) validateSemantics(config *PipelineConfig) error {
	ve := domain.NewValidationError(config.Metadata.Name)
	unitIDs := make(map[string]struct{}, len(config.Units))

	for _, unit := range config.Units {
		if _, exists := unitIDs[unit.ID]; exists {
			ve.AddError(fmt.Sprintf("duplicate unit ID %q", unit.ID))
			continue
		}
		unitIDs[unit.ID] = struct{}{}

		if err := ValidateUnitParameters(unit.Type, unit.Parameters); err != nil {
			ve.AddError(fmt.Sprintf("unit %s parameter validation failed: %v", unit.ID, err))
		}
	}

	seen := make(map[string]struct{}, len(config.Pipeline.Order))
	for _, unitID := range config.Pipeline.Order {
		if _, exists := unitIDs[unitID]; !exists {
			ve.AddError(fmt.Sprintf("pipeline order references non-existent unit: %s", unitID))
			continue
		}
		if _, dup := seen[unitID]; dup {
			ve.AddError(fmt.Sprintf("pipeline order lists unit %s more than once", unitID))
			continue
		}
		seen[unitID] = struct{}{}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Compile instantiates the configured units through the registry and
// assembles them into an executable Pipeline in the configured order.
// The config must already be validated.
func (pl *PipelineLoader) Compile(config *PipelineConfig) (*Pipeline, error) {
	unitsByID := make(map[string]UnitConfig, len(config.Units))
	for _, uc := range config.Units {
		unitsByID[uc.ID] = uc
	}

	pipeline := NewPipeline(config.Metadata.Name)
	for _, unitID := range config.Pipeline.Order {
		uc := unitsByID[unitID]

		params, err := decodeParameters(uc.Parameters)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", uc.ID, err)
		}

		unit, err := pl.registry.Create(uc.Type, uc.ID, params)
		if err != nil {
			return nil, err
		}
		if err := unit.Validate(); err != nil {
			return nil, fmt.Errorf("unit %s failed validation: %w", uc.ID, err)
		}
		if err := pipeline.Add(WrapUnit(unit)); err != nil {
			return nil, err
		}
	}

	return pipeline, nil
}

// decodeParameters converts a YAML parameters node into the generic map
// consumed by unit factories. An absent node decodes to an empty map so
// factories fall back to their defaults.
func decodeParameters(params yaml.Node) (map[string]any, error) {
	if params.Kind == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := params.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
