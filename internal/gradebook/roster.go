package gradebook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/edulytics/go-classrank/internal/domain"
)

// foldCaser is a package-level Unicode case folder used to normalize
// names before fuzzy comparison.
var foldCaser = cases.Fold()

// Student identifies one class member.
type Student struct {
	// ID uniquely identifies the student within the institution.
	ID int32 `yaml:"id" json:"id"`

	// Name is the student's full name.
	Name string `yaml:"name" json:"name"`
}

// Match pairs a student with the similarity of their name to a search
// query, between 0.0 and 1.0.
type Match struct {
	Student Student

	// Similarity is the normalized Levenshtein similarity of the query
	// to the student's name.
	Similarity float64
}

// Roster is the registry of students in a class. It supports exact lookup
// by ID, approximate lookup by name, and locale-aware name ordering for
// report output. It is safe for concurrent use.
type Roster struct {
	mu sync.RWMutex
	// students maps IDs to enrolled students.
	students map[int32]Student

	// collator orders names with Brazilian Portuguese collation rules so
	// accented names sort where a reader expects them.
	collator *collate.Collator
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		students: make(map[int32]Student),
		collator: collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
	}
}

// Add enrolls a student. It returns an error if the name is empty or the
// ID is already enrolled.
func (r *Roster) Add(student Student) error {
	if student.Name == "" {
		return fmt.Errorf("student %d: %w: name", student.ID, domain.ErrEmptyValue)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.students[student.ID]; exists {
		return fmt.Errorf("student %d already enrolled", student.ID)
	}
	r.students[student.ID] = student
	return nil
}

// Get returns the student with the given ID.
func (r *Roster) Get(id int32) (Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, ok := r.students[id]
	return student, ok
}

// Len returns the number of enrolled students.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}

// SortedByName returns the enrolled students ordered by name using
// Brazilian Portuguese collation, with the ID as a tie breaker for
// identical names.
func (r *Roster) SortedByName() []Student {
	r.mu.RLock()
	students := make([]Student, 0, len(r.students))
	for _, s := range r.students {
		students = append(students, s)
	}
	r.mu.RUnlock()

	sort.Slice(students, func(i, j int) bool {
		if c := r.collator.CompareString(students[i].Name, students[j].Name); c != 0 {
			return c < 0
		}
		return students[i].ID < students[j].ID
	})
	return students
}

// SearchByName returns students whose names approximately match the query,
// ordered by descending similarity. Only matches with a similarity of at
// least minSimilarity (0.0-1.0) are returned. Comparison is case-folded,
// so "JOÃO" matches "joão".
func (r *Roster) SearchByName(query string, minSimilarity float64) ([]Match, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query", domain.ErrEmptyValue)
	}
	if minSimilarity < 0 || minSimilarity > 1 {
		return nil, fmt.Errorf("minimum similarity must be in [0, 1], got %v", minSimilarity)
	}

	folded := foldCaser.String(query)

	r.mu.RLock()
	matches := make([]Match, 0)
	for _, s := range r.students {
		similarity := nameSimilarity(folded, foldCaser.String(s.Name))
		if similarity >= minSimilarity {
			matches = append(matches, Match{Student: s, Similarity: similarity})
		}
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Student.ID < matches[j].Student.ID
	})
	return matches, nil
}

// nameSimilarity converts the Levenshtein edit distance between two
// case-folded names into a similarity score between 0.0 and 1.0.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}
