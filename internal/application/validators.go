package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidateUnitParameters validates the parameters for a specific unit type,
// ensuring all required fields are present and values meet domain
// constraints. It supports the weighted_mean, ranking, status, and custom
// unit types with type-specific validation rules.
// ValidateUnitParameters returns an error if parameter decoding fails
// or if any validation rule is violated.
func ValidateUnitParameters(unitType string, params yaml.Node) error {
	// An absent parameters node means the unit runs on its defaults.
	if params.Kind == 0 {
		return nil
	}

	var paramMap map[string]any
	if err := params.Decode(&paramMap); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	switch unitType {
	case "weighted_mean":
		return validateWeightedMeanParams(paramMap)
	case "ranking":
		return validateRankingParams(paramMap)
	case "status":
		return validateStatusParams(paramMap)
	case "custom":
		// Custom units have flexible validation.
		return nil
	default:
		return fmt.Errorf("unknown unit type: %s", unitType)
	}
}

// validateWeightedMeanParams checks that an explicit scale_max is a positive
// number and that flag parameters carry boolean values.
func validateWeightedMeanParams(params map[string]any) error {
	if raw, ok := params["scale_max"]; ok {
		val, ok := asFloat(raw)
		if !ok {
			return fmt.Errorf("weighted_mean 'scale_max' must be a number")
		}
		if val <= 0 {
			return fmt.Errorf("weighted_mean 'scale_max' must be positive, got %v", val)
		}
	}
	if raw, ok := params["require_positive_weight_sum"]; ok {
		if _, ok := raw.(bool); !ok {
			return fmt.Errorf("weighted_mean 'require_positive_weight_sum' must be a boolean")
		}
	}
	return nil
}

// validateRankingParams checks the tie breaker enumeration and flag types.
func validateRankingParams(params map[string]any) error {
	if raw, ok := params["tie_breaker"]; ok {
		val, ok := raw.(string)
		if !ok {
			return fmt.Errorf("ranking 'tie_breaker' must be a string")
		}
		if val != "none" && val != "student_id" {
			return fmt.Errorf("ranking 'tie_breaker' must be 'none' or 'student_id', got %q", val)
		}
	}
	if raw, ok := params["reject_non_finite"]; ok {
		if _, ok := raw.(bool); !ok {
			return fmt.Errorf("ranking 'reject_non_finite' must be a boolean")
		}
	}
	return nil
}

// validateStatusParams checks threshold types and the ordering invariant
// between the recovery and approval thresholds.
func validateStatusParams(params map[string]any) error {
	approval, hasApproval := 0.0, false
	recovery, hasRecovery := 0.0, false

	if raw, ok := params["approval_threshold"]; ok {
		val, numeric := asFloat(raw)
		if !numeric {
			return fmt.Errorf("status 'approval_threshold' must be a number")
		}
		if val < 0 {
			return fmt.Errorf("status 'approval_threshold' must be non-negative, got %v", val)
		}
		approval, hasApproval = val, true
	}
	if raw, ok := params["recovery_threshold"]; ok {
		val, numeric := asFloat(raw)
		if !numeric {
			return fmt.Errorf("status 'recovery_threshold' must be a number")
		}
		if val < 0 {
			return fmt.Errorf("status 'recovery_threshold' must be non-negative, got %v", val)
		}
		recovery, hasRecovery = val, true
	}
	if hasApproval && hasRecovery && recovery > approval {
		return fmt.Errorf("status 'recovery_threshold' (%v) must not exceed 'approval_threshold' (%v)",
			recovery, approval)
	}
	return nil
}

// asFloat normalizes the numeric types YAML decoding can produce.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// registerCustomValidators registers domain-specific validation functions
// with the validator instance, including semantic version validation.
// registerCustomValidators returns an error if any validator registration fails.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	return nil
}

// validateSemver validates that a string follows semantic versioning
// format (X.Y.Z where X, Y, Z are non-negative integers).
// validateSemver is a validator.Func that can be registered with
// the validator instance for use in struct tags.
func validateSemver(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var major, minor, patch int
	n, err := fmt.Sscanf(value, "%d.%d.%d", &major, &minor, &patch)
	return err == nil && n == 3
}
