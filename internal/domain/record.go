// Package domain contains pure, dependency-free domain models and the
// numeric kernels of the grading engine.
package domain

// PerformanceRecord pairs a student identifier with a computed final score.
// The identifier is opaque: it carries no ordering semantics, and only the
// score participates in ranking. The field layout (id first, score second)
// matches the fixed interop layout used when records cross a host boundary.
type PerformanceRecord struct {
	// StudentID uniquely identifies the student within a class.
	StudentID int32 `json:"student_id"`

	// Score is the final score used for ranking, on the grading scale
	// configured by the caller (typically 0-10).
	Score float32 `json:"score"`
}

// AcademicStatus classifies a student's final average against the
// institution's approval thresholds.
type AcademicStatus string

const (
	// StatusApproved indicates the final average met the approval threshold.
	StatusApproved AcademicStatus = "approved"

	// StatusRecovery indicates the final average fell between the recovery
	// and approval thresholds, so the student takes a recovery exam.
	StatusRecovery AcademicStatus = "recovery"

	// StatusFailed indicates the final average fell below the recovery
	// threshold.
	StatusFailed AcademicStatus = "failed"
)

// Default approval thresholds on the 0-10 grading scale.
const (
	// DefaultApprovalThreshold is the minimum final average for approval.
	DefaultApprovalThreshold float32 = 7.0

	// DefaultRecoveryThreshold is the minimum final average to qualify for
	// a recovery exam instead of failing outright.
	DefaultRecoveryThreshold float32 = 5.0
)

// StatusFor classifies a final average against the given thresholds.
// The approval threshold must be greater than or equal to the recovery
// threshold; callers validate that invariant at configuration time.
func StatusFor(average, approval, recovery float32) AcademicStatus {
	switch {
	case average >= approval:
		return StatusApproved
	case average >= recovery:
		return StatusRecovery
	default:
		return StatusFailed
	}
}

// StatusReport pairs a performance record with its academic status.
// It is produced by the status unit after ranking.
type StatusReport struct {
	// StudentID identifies the student this report belongs to.
	StudentID int32 `json:"student_id"`

	// Average is the final weighted average the status was derived from.
	Average float32 `json:"average"`

	// Status is the academic classification of the average.
	Status AcademicStatus `json:"status"`
}
