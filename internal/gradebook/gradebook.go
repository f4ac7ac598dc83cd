// Package gradebook maintains per-student assessment records for a subject
// and derives final averages, class rankings, and academic statuses from
// them using the domain kernels.
package gradebook

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/edulytics/go-classrank/internal/domain"
)

// AssessmentKind identifies which evaluation an assessment score belongs to.
type AssessmentKind string

// Standard assessment kinds of a semester.
const (
	// AssessmentNP1 is the first bimonthly exam.
	AssessmentNP1 AssessmentKind = "np1"

	// AssessmentNP2 is the second bimonthly exam.
	AssessmentNP2 AssessmentKind = "np2"

	// AssessmentExam is the final exam.
	AssessmentExam AssessmentKind = "exam"
)

// DefaultWeights returns the standard assessment weighting of a semester:
// NP1 weight 2, NP2 weight 3, final exam weight 5.
func DefaultWeights() map[AssessmentKind]float32 {
	return map[AssessmentKind]float32{
		AssessmentNP1:  2.0,
		AssessmentNP2:  3.0,
		AssessmentExam: 5.0,
	}
}

// Assessment is a single graded evaluation for one student.
type Assessment struct {
	// Kind identifies the evaluation this score belongs to.
	Kind AssessmentKind `yaml:"kind" json:"kind"`

	// Score is the grade obtained, on the book's grading scale.
	Score float32 `yaml:"score" json:"score"`

	// Weight is the relative weight of this assessment in the final
	// average.
	Weight float32 `yaml:"weight" json:"weight"`
}

// Gradebook holds the assessments of one subject for a class of students.
// It is safe for concurrent use.
type Gradebook struct {
	// subject names the subject this book grades.
	subject string

	mu sync.RWMutex
	// entries maps student IDs to their recorded assessments, in
	// recording order.
	entries map[int32][]Assessment
}

// NewGradebook creates an empty gradebook for the named subject.
func NewGradebook(subject string) (*Gradebook, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: subject", domain.ErrEmptyValue)
	}
	return &Gradebook{
		subject: subject,
		entries: make(map[int32][]Assessment),
	}, nil
}

// Subject returns the subject this gradebook grades.
func (gb *Gradebook) Subject() string { return gb.subject }

// Record appends an assessment for the given student.
func (gb *Gradebook) Record(studentID int32, assessment Assessment) {
	gb.mu.Lock()
	defer gb.mu.Unlock()
	gb.entries[studentID] = append(gb.entries[studentID], assessment)
}

// Assessments returns a copy of the recorded assessments for a student,
// in recording order.
func (gb *Gradebook) Assessments(studentID int32) []Assessment {
	gb.mu.RLock()
	defer gb.mu.RUnlock()

	entries := gb.entries[studentID]
	out := make([]Assessment, len(entries))
	copy(out, entries)
	return out
}

// StudentIDs returns the IDs of every student with at least one recorded
// assessment, in ascending order.
func (gb *Gradebook) StudentIDs() []int32 {
	gb.mu.RLock()
	defer gb.mu.RUnlock()

	ids := make([]int32, 0, len(gb.entries))
	for id := range gb.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FinalAverage computes the weighted average of a student's assessments.
// A student with no recorded assessments has a 0.0 average by the empty
// input convention of the kernel.
func (gb *Gradebook) FinalAverage(studentID int32) (float32, error) {
	assessments := gb.Assessments(studentID)

	scores := make([]float32, len(assessments))
	weights := make([]float32, len(assessments))
	for i, a := range assessments {
		scores[i] = a.Score
		weights[i] = a.Weight
	}

	average, err := domain.WeightedAverage(scores, weights)
	if err != nil {
		return 0, fmt.Errorf("student %d: %w", studentID, err)
	}
	return average, nil
}

// EvaluateClass computes the final average of every student in the book
// concurrently and returns one performance record per student, ordered by
// ascending student ID. The concurrency is bounded by the number of
// available CPUs.
func (gb *Gradebook) EvaluateClass(ctx context.Context) ([]domain.PerformanceRecord, error) {
	ids := gb.StudentIDs()
	records := make([]domain.PerformanceRecord, len(ids))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, id := range ids {
		g.Go(func() error {
			average, err := gb.FinalAverage(id)
			if err != nil {
				return err
			}
			records[i] = domain.PerformanceRecord{StudentID: id, Score: average}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("class evaluation failed: %w", err)
	}
	return records, nil
}

// RankClass evaluates the class and returns the records ranked by
// descending final average, with exact ties broken by ascending student ID
// so report output is deterministic.
func (gb *Gradebook) RankClass(ctx context.Context) ([]domain.PerformanceRecord, error) {
	records, err := gb.EvaluateClass(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortByPerformanceTieBreak(records)
	return records, nil
}

// ClassReport ranks the class and classifies every student against the
// given thresholds, in ranking order.
func (gb *Gradebook) ClassReport(ctx context.Context, approval, recovery float32) ([]domain.StatusReport, error) {
	if recovery > approval {
		return nil, fmt.Errorf("%w: recovery threshold %.2f exceeds approval threshold %.2f",
			domain.ErrInvalidConfiguration, recovery, approval)
	}

	ranking, err := gb.RankClass(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.StatusReport, len(ranking))
	for i, record := range ranking {
		reports[i] = domain.StatusReport{
			StudentID: record.StudentID,
			Average:   record.Score,
			Status:    domain.StatusFor(record.Score, approval, recovery),
		}
	}
	return reports, nil
}
