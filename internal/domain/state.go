package domain

import (
	"fmt"
	"maps"
	"reflect"
	"time"
)

// Key represents a type-safe generic key for accessing values in State.
// The type parameter T ensures compile-time type safety when getting and
// setting values, eliminating the need for runtime type assertions.
type Key[T any] struct{ name string }

// NewKey creates a new Key with the specified name and type.
// This function is provided for creating keys outside of the domain package.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Predefined state keys used throughout a grading pipeline.
// Each key is strongly typed to ensure type safety at compile time.
var (
	// KeyScores stores the assessment scores for a single student,
	// ordered to match KeyWeights.
	KeyScores = Key[[]float32]{"scores"}

	// KeyWeights stores the assessment weights, ordered to match KeyScores.
	KeyWeights = Key[[]float32]{"weights"}

	// KeyAverage stores the weighted average produced by the weighted
	// mean unit.
	KeyAverage = Key[float32]{"average"}

	// KeyClassRecords stores the per-student performance records for a
	// class, in caller order.
	KeyClassRecords = Key[[]PerformanceRecord]{"class_records"}

	// KeyRanking stores the class records in non-increasing score order,
	// produced by the ranking unit.
	KeyRanking = Key[[]PerformanceRecord]{"ranking"}

	// KeyStatuses stores the per-student academic status reports produced
	// by the status unit.
	KeyStatuses = Key[[]StatusReport]{"statuses"}

	// Execution context keys for tracking metadata across pipeline runs.

	// KeyPipelineID stores the unique identifier of the grading pipeline
	// being executed, used for tracking and observability.
	KeyPipelineID = Key[string]{"execution.pipeline_id"}

	// KeyClassID stores the identifier of the class being graded.
	KeyClassID = Key[string]{"execution.class_id"}

	// KeyRunID stores a unique identifier for this specific execution
	// instance, useful for tracing and correlation.
	KeyRunID = Key[string]{"execution.run_id"}
)

// deepCopyValue creates a deep copy of a value to ensure true immutability.
// It handles slices, maps, and other reference types that would otherwise
// allow external modification of State data.
func deepCopyValue(value any) any {
	if value == nil {
		return nil
	}

	// time.Time is immutable and can be returned directly.
	if val, ok := value.(time.Time); ok {
		return val
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice:
		newSlice := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
		for i := 0; i < v.Len(); i++ {
			newSlice.Index(i).Set(reflect.ValueOf(deepCopyValue(v.Index(i).Interface())))
		}
		return newSlice.Interface()

	case reflect.Map:
		newMap := reflect.MakeMap(v.Type())
		for _, key := range v.MapKeys() {
			copiedKey := deepCopyValue(key.Interface())
			copiedValue := deepCopyValue(v.MapIndex(key).Interface())
			newMap.SetMapIndex(reflect.ValueOf(copiedKey), reflect.ValueOf(copiedValue))
		}
		return newMap.Interface()

	case reflect.Ptr:
		if v.IsNil() {
			return v.Interface()
		}
		newPtr := reflect.New(v.Elem().Type())
		newPtr.Elem().Set(reflect.ValueOf(deepCopyValue(v.Elem().Interface())))
		return newPtr.Interface()

	case reflect.Struct:
		// This performs a shallow copy for unexported fields but deep copies
		// exported fields.
		newStruct := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			if newStruct.Field(i).CanSet() {
				newStruct.Field(i).Set(reflect.ValueOf(deepCopyValue(v.Field(i).Interface())))
			}
		}
		return newStruct.Interface()

	default:
		// Primitive types are returned as-is since they are copied by value.
		return value
	}
}

// State represents an immutable collection of grading data that flows
// through the pipeline. It uses copy-on-write semantics to ensure
// thread-safety and prevent unintended mutations. State is the primary
// data structure for passing information between Units.
type State struct {
	// data holds the key-value pairs that make up the state.
	// It is unexported to maintain immutability guarantees.
	data map[string]any
}

// NewState creates a new empty State.
// The returned State is ready to use and can be safely shared across
// goroutines.
func NewState() State {
	return State{
		data: make(map[string]any),
	}
}

// Get retrieves a value from the State with compile-time type safety.
// It returns the value and a boolean indicating whether the key exists
// and contains a value of the correct type. The returned value is a deep
// copy to maintain immutability.
//
// Example:
//
//	scores, ok := Get(state, KeyScores)
//	if !ok {
//	    // handle missing value
//	}
//	// scores is typed as []float32, no type assertion needed
func Get[T any](s State, key Key[T]) (T, bool) {
	var zero T
	value, exists := s.data[key.name]
	if !exists {
		return zero, false
	}

	copied := deepCopyValue(value)
	val, ok := copied.(T)
	return val, ok
}

// GetRaw is a method version of Get that uses a string key.
// For type safety, use the generic Get function instead.
func (s State) GetRaw(keyName string) (any, bool) {
	value, exists := s.data[keyName]
	if !exists {
		return nil, false
	}
	return deepCopyValue(value), true
}

// With creates a new State with the specified key-value pair added or
// updated. It implements copy-on-write semantics, returning a new State
// instance while leaving the original unchanged. This function is the
// primary way to add or update data in a State.
//
// Example:
//
//	newState := With(state, KeyScores, []float32{7.5, 9.0, 6.0})
func With[T any](s State, key Key[T], value T) State {
	newData := maps.Clone(s.data)
	newData[key.name] = deepCopyValue(value)
	return State{data: newData}
}

// WithRaw is a method version of With that uses a string key and allows
// chaining. For type safety, use the generic With function instead.
func (s State) WithRaw(keyName string, value any) State {
	newData := maps.Clone(s.data)
	newData[keyName] = deepCopyValue(value)
	return State{data: newData}
}

// WithMultiple creates a new State with multiple key-value pairs added
// or updated. It is more efficient than chaining multiple With calls as
// it performs a single clone operation. The updates map uses string keys
// for flexibility when updating multiple values at once.
func (s State) WithMultiple(updates map[string]any) State {
	newData := maps.Clone(s.data)
	for k, v := range updates {
		newData[k] = deepCopyValue(v)
	}
	return State{data: newData}
}

// Keys returns all keys present in the State.
// The returned slice can be used to iterate over all stored values and
// is safe to modify without affecting the original State.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// String returns a string representation of the State for debugging purposes.
func (s State) String() string {
	return fmt.Sprintf("State%v", s.data)
}

// ExecutionContext contains metadata about the current grading run that
// flows through the State during pipeline execution. It provides consistent
// access to execution metadata for middleware and observability.
type ExecutionContext struct {
	// PipelineID is the unique identifier of the grading pipeline being executed.
	PipelineID string

	// ClassID identifies the class being graded.
	ClassID string

	// RunID is a unique identifier for this specific execution instance,
	// useful for tracing and correlation.
	RunID string
}

// WithExecutionContext creates a new State with execution context metadata
// included, enabling proper tracking and observability. This method should
// be called at the beginning of pipeline execution.
func (s State) WithExecutionContext(ctx ExecutionContext) State {
	updates := map[string]any{
		KeyPipelineID.name: ctx.PipelineID,
		KeyClassID.name:    ctx.ClassID,
		KeyRunID.name:      ctx.RunID,
	}
	return s.WithMultiple(updates)
}

// GetExecutionContext extracts execution context metadata from the State.
// It returns the execution context and a boolean indicating whether all
// required context fields are present and valid.
func (s State) GetExecutionContext() (ExecutionContext, bool) {
	pipelineID, ok1 := Get(s, KeyPipelineID)
	classID, ok2 := Get(s, KeyClassID)
	runID, ok3 := Get(s, KeyRunID)

	if !ok1 || !ok2 || !ok3 {
		return ExecutionContext{}, false
	}

	return ExecutionContext{
		PipelineID: pipelineID,
		ClassID:    classID,
		RunID:      runID,
	}, true
}
