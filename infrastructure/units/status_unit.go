package units

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/edulytics/go-classrank/internal/domain"
	"github.com/edulytics/go-classrank/internal/ports"
)

var _ ports.Unit = (*StatusUnit)(nil)

// StatusUnit classifies each ranked record against the institution's
// approval thresholds and writes the per-student status reports to the
// state under KeyStatuses.
//
// The classification mirrors the usual Brazilian semester rule: a final
// average at or above the approval threshold passes, one at or above the
// recovery threshold earns a recovery exam, and anything lower fails.
//
// The unit is stateless and thread-safe.
type StatusUnit struct {
	name   string
	config StatusConfig
	tracer trace.Tracer
}

// StatusConfig defines the configuration parameters for the StatusUnit.
// All fields are validated during unit creation and parameter unmarshaling.
type StatusConfig struct {
	// ApprovalThreshold is the minimum final average for approval.
	ApprovalThreshold float32 `yaml:"approval_threshold" json:"approval_threshold" validate:"gte=0"`

	// RecoveryThreshold is the minimum final average to qualify for a
	// recovery exam. Must not exceed ApprovalThreshold.
	RecoveryThreshold float32 `yaml:"recovery_threshold" json:"recovery_threshold" validate:"gte=0,ltefield=ApprovalThreshold"`
}

// NewStatusUnit creates a new StatusUnit with the specified configuration.
// It returns an error if the configuration is invalid.
func NewStatusUnit(name string, config StatusConfig) (*StatusUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &StatusUnit{
		name:   name,
		config: config,
		tracer: otel.Tracer("status-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (su *StatusUnit) Name() string { return su.name }

// Execute reads the ranking from the state, classifies each record, and
// returns a new state carrying the reports under KeyStatuses. The reports
// keep the ranking order.
func (su *StatusUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := su.tracer.Start(ctx, "StatusUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "status"),
			attribute.String("unit.id", su.name),
			attribute.Float64("config.approval_threshold", float64(su.config.ApprovalThreshold)),
			attribute.Float64("config.recovery_threshold", float64(su.config.RecoveryThreshold)),
		),
	)
	defer span.End()

	ranking, ok := domain.Get(state, domain.KeyRanking)
	if !ok {
		err := domain.NewStateError("ranking", "read", domain.ErrKeyNotFound)
		span.RecordError(err)
		return state, err
	}

	reports := make([]domain.StatusReport, len(ranking))
	var approved int
	for i, record := range ranking {
		status := domain.StatusFor(record.Score, su.config.ApprovalThreshold, su.config.RecoveryThreshold)
		reports[i] = domain.StatusReport{
			StudentID: record.StudentID,
			Average:   record.Score,
			Status:    status,
		}
		if status == domain.StatusApproved {
			approved++
		}
	}

	span.SetAttributes(
		attribute.Int("input.count", len(ranking)),
		attribute.Int("output.approved", approved),
	)

	return domain.With(state, domain.KeyStatuses, reports), nil
}

// Validate checks if the unit is properly configured.
func (su *StatusUnit) Validate() error {
	if err := validate.Struct(su.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML parameters into the unit's config.
func (su *StatusUnit) UnmarshalParameters(params yaml.Node) error {
	var config StatusConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	su.config = config
	return nil
}

// DefaultStatusConfig returns a StatusConfig with the standard 7.0/5.0
// thresholds on the 0-10 scale.
func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		ApprovalThreshold: domain.DefaultApprovalThreshold,
		RecoveryThreshold: domain.DefaultRecoveryThreshold,
	}
}

// CreateStatusUnit is a factory function that creates a StatusUnit from a
// configuration map, for use with the UnitRegistry.
func CreateStatusUnit(id string, config map[string]any) (*StatusUnit, error) {
	statusConfig := DefaultStatusConfig()
	if raw, present := config["approval_threshold"]; present {
		val, ok := floatParam(config, "approval_threshold")
		if !ok {
			return nil, fmt.Errorf("%w: approval_threshold must be a number, got %T", domain.ErrTypeMismatch, raw)
		}
		statusConfig.ApprovalThreshold = val
	}
	if raw, present := config["recovery_threshold"]; present {
		val, ok := floatParam(config, "recovery_threshold")
		if !ok {
			return nil, fmt.Errorf("%w: recovery_threshold must be a number, got %T", domain.ErrTypeMismatch, raw)
		}
		statusConfig.RecoveryThreshold = val
	}
	return NewStatusUnit(id, statusConfig)
}
