package units

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/edulytics/go-classrank/internal/domain"
	"github.com/edulytics/go-classrank/internal/ports"
)

var _ ports.Unit = (*WeightedMeanUnit)(nil)

// WeightedMeanUnit computes the weighted average of a student's assessment
// scores and writes it to the state under KeyAverage.
//
// The computation itself follows the domain kernel exactly: empty inputs and
// zero weight sums yield 0.0 by convention rather than an error. On top of
// the kernel this unit validates its inputs, rejecting non-finite values and
// scores outside the configured grading scale before any arithmetic runs.
//
// The unit is stateless and thread-safe.
type WeightedMeanUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config WeightedMeanConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// WeightedMeanConfig defines the configuration parameters for the
// WeightedMeanUnit. All fields are validated during unit creation and
// parameter unmarshaling.
type WeightedMeanConfig struct {
	// ScaleMax is the upper bound of the grading scale; scores must fall
	// in [0, ScaleMax]. Brazilian institutions typically grade on 0-10.
	ScaleMax float32 `yaml:"scale_max" json:"scale_max" validate:"required,gt=0"`

	// RequirePositiveWeightSum, when true, treats a zero weight sum as an
	// error instead of reporting the documented zero-average convention.
	RequirePositiveWeightSum bool `yaml:"require_positive_weight_sum" json:"require_positive_weight_sum"`
}

// NewWeightedMeanUnit creates a new WeightedMeanUnit with the specified
// configuration. It returns an error if the configuration is invalid.
func NewWeightedMeanUnit(name string, config WeightedMeanConfig) (*WeightedMeanUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &WeightedMeanUnit{
		name:   name,
		config: config,
		tracer: otel.Tracer("weighted-mean-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (wmu *WeightedMeanUnit) Name() string { return wmu.name }

// Execute reads the scores and weights from the state, computes the weighted
// average, and returns a new state carrying the result under KeyAverage.
func (wmu *WeightedMeanUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := wmu.tracer.Start(ctx, "WeightedMeanUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "weighted_mean"),
			attribute.String("unit.id", wmu.name),
			attribute.Float64("config.scale_max", float64(wmu.config.ScaleMax)),
		),
	)
	defer span.End()

	scores, ok := domain.Get(state, domain.KeyScores)
	if !ok {
		err := domain.NewStateError("scores", "read", ErrNoScores)
		span.RecordError(err)
		return state, err
	}

	weights, ok := domain.Get(state, domain.KeyWeights)
	if !ok {
		err := domain.NewStateError("weights", "read", domain.ErrKeyNotFound)
		span.RecordError(err)
		return state, err
	}

	if len(scores) > MaxRecords {
		err := fmt.Errorf("too many scores: %d exceeds limit of %d", len(scores), MaxRecords)
		span.RecordError(err)
		return state, err
	}

	if err := wmu.validateInputs(scores, weights); err != nil {
		span.RecordError(err)
		return state, err
	}

	average, err := domain.WeightedAverage(scores, weights)
	if err != nil {
		span.RecordError(err)
		return state, fmt.Errorf("weighted average failed: %w", err)
	}

	if wmu.config.RequirePositiveWeightSum && len(scores) > 0 {
		var sum float32
		for _, w := range weights {
			sum += w
		}
		if sum == 0 {
			span.RecordError(ErrZeroWeightSum)
			return state, ErrZeroWeightSum
		}
	}

	span.SetAttributes(
		attribute.Int("input.count", len(scores)),
		attribute.Float64("output.average", float64(average)),
	)

	return domain.With(state, domain.KeyAverage, average), nil
}

// validateInputs rejects non-finite values and scores outside the grading
// scale. Weights may be any finite value; their validity is a policy of the
// weight-sum convention, not a per-element bound.
func (wmu *WeightedMeanUnit) validateInputs(scores, weights []float32) error {
	for i, s := range scores {
		if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
			return fmt.Errorf("%w: score at index %d", ErrNonFiniteScore, i)
		}
		if s < 0 || s > wmu.config.ScaleMax {
			return fmt.Errorf("%w: score %.2f at index %d, scale [0, %.2f]",
				ErrScoreOutOfRange, s, i, wmu.config.ScaleMax)
		}
	}
	for i, w := range weights {
		if math.IsNaN(float64(w)) || math.IsInf(float64(w), 0) {
			return fmt.Errorf("%w: weight at index %d", ErrNonFiniteScore, i)
		}
	}
	return nil
}

// Validate checks if the unit is properly configured.
func (wmu *WeightedMeanUnit) Validate() error {
	if err := validate.Struct(wmu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML parameters into the unit's config.
func (wmu *WeightedMeanUnit) UnmarshalParameters(params yaml.Node) error {
	var config WeightedMeanConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	wmu.config = config
	return nil
}

// DefaultWeightedMeanConfig returns a WeightedMeanConfig with sensible
// defaults for the 0-10 grading scale.
func DefaultWeightedMeanConfig() WeightedMeanConfig {
	return WeightedMeanConfig{
		ScaleMax:                 10.0,
		RequirePositiveWeightSum: false,
	}
}

// CreateWeightedMeanUnit is a factory function that creates a
// WeightedMeanUnit from a configuration map, for use with the UnitRegistry.
func CreateWeightedMeanUnit(id string, config map[string]any) (*WeightedMeanUnit, error) {
	meanConfig := DefaultWeightedMeanConfig()
	if raw, present := config["scale_max"]; present {
		val, ok := floatParam(config, "scale_max")
		if !ok {
			return nil, fmt.Errorf("%w: scale_max must be a number, got %T", domain.ErrTypeMismatch, raw)
		}
		meanConfig.ScaleMax = val
	}
	if raw, present := config["require_positive_weight_sum"]; present {
		val, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: require_positive_weight_sum must be a boolean, got %T", domain.ErrTypeMismatch, raw)
		}
		meanConfig.RequirePositiveWeightSum = val
	}
	return NewWeightedMeanUnit(id, meanConfig)
}
