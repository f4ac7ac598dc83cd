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

var _ ports.Unit = (*RankingUnit)(nil)

// RankingUnit orders the class performance records by descending score and
// writes the result to the state under KeyRanking.
//
// With the default "none" tie breaker the relative order of records with
// exactly equal scores is unspecified: the underlying sort is not stable
// and ties may be reordered arbitrarily between runs. That looseness is
// part of the ranking contract; configure the "student_id" tie breaker when
// a deterministic order is required.
//
// The input records under KeyClassRecords are never modified; the state's
// copy-on-write semantics hand the unit its own copy to sort.
//
// The unit is stateless and thread-safe.
type RankingUnit struct {
	name   string
	config RankingConfig
	tracer trace.Tracer
}

// RankingConfig defines the configuration parameters for the RankingUnit.
// All fields are validated during unit creation and parameter unmarshaling.
type RankingConfig struct {
	// TieBreaker defines how records with exactly equal scores are ordered.
	// Options are "none" (unspecified order) or "student_id" (ascending id).
	TieBreaker TieBreaker `yaml:"tie_breaker" json:"tie_breaker" validate:"required,oneof=none student_id"`

	// RejectNonFinite, when true, fails the unit if any record carries a
	// NaN or infinite score instead of letting it participate in ordering.
	RejectNonFinite bool `yaml:"reject_non_finite" json:"reject_non_finite"`
}

// NewRankingUnit creates a new RankingUnit with the specified configuration.
// It returns an error if the configuration is invalid.
func NewRankingUnit(name string, config RankingConfig) (*RankingUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RankingUnit{
		name:   name,
		config: config,
		tracer: otel.Tracer("ranking-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (ru *RankingUnit) Name() string { return ru.name }

// Execute reads the class records from the state, sorts them by descending
// score, and returns a new state carrying the ranking under KeyRanking.
func (ru *RankingUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := ru.tracer.Start(ctx, "RankingUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "ranking"),
			attribute.String("unit.id", ru.name),
			attribute.String("config.tie_breaker", string(ru.config.TieBreaker)),
		),
	)
	defer span.End()

	records, ok := domain.Get(state, domain.KeyClassRecords)
	if !ok {
		err := domain.NewStateError("class_records", "read", domain.ErrKeyNotFound)
		span.RecordError(err)
		return state, err
	}

	if len(records) > MaxRecords {
		err := fmt.Errorf("too many records: %d exceeds limit of %d", len(records), MaxRecords)
		span.RecordError(err)
		return state, err
	}

	if ru.config.RejectNonFinite {
		for i, r := range records {
			if math.IsNaN(float64(r.Score)) || math.IsInf(float64(r.Score), 0) {
				err := fmt.Errorf("%w: record at index %d (student %d)",
					ErrNonFiniteScore, i, r.StudentID)
				span.RecordError(err)
				return state, err
			}
		}
	}

	// records is already this unit's private copy; sort it in place.
	switch ru.config.TieBreaker {
	case TieStudentID:
		domain.SortByPerformanceTieBreak(records)
	default:
		domain.SortByPerformance(records)
	}

	span.SetAttributes(attribute.Int("input.count", len(records)))

	return domain.With(state, domain.KeyRanking, records), nil
}

// Validate checks if the unit is properly configured.
func (ru *RankingUnit) Validate() error {
	if err := validate.Struct(ru.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML parameters into the unit's config.
func (ru *RankingUnit) UnmarshalParameters(params yaml.Node) error {
	var config RankingConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	ru.config = config
	return nil
}

// DefaultRankingConfig returns a RankingConfig with sensible defaults.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		TieBreaker:      TieNone,
		RejectNonFinite: true,
	}
}

// CreateRankingUnit is a factory function that creates a RankingUnit from a
// configuration map, for use with the UnitRegistry.
func CreateRankingUnit(id string, config map[string]any) (*RankingUnit, error) {
	rankConfig := DefaultRankingConfig()
	if raw, present := config["tie_breaker"]; present {
		val, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: tie_breaker must be a string, got %T", domain.ErrTypeMismatch, raw)
		}
		rankConfig.TieBreaker = TieBreaker(val)
	}
	if raw, present := config["reject_non_finite"]; present {
		val, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: reject_non_finite must be a boolean, got %T", domain.ErrTypeMismatch, raw)
		}
		rankConfig.RejectNonFinite = val
	}
	return NewRankingUnit(id, rankConfig)
}
