package testutils

import (
	"fmt"
	"math/rand"
	"time"
)

// Name pools for synthetic students. Accented entries are intentional so
// generated rosters exercise locale-aware sorting and fuzzy search.
var (
	firstNames = []string{
		"Ana", "Bruno", "Camila", "Diego", "Eduardo", "Érica", "Fábio",
		"Gabriela", "Heitor", "Isabela", "João", "Larissa", "Marcos",
		"Natália", "Otávio", "Paula", "Rafael", "Sofia", "Thiago", "Vitória",
	}
	lastNames = []string{
		"Almeida", "Barbosa", "Carvalho", "Dias", "Ferreira", "Gonçalves",
		"Lima", "Martins", "Nascimento", "Oliveira", "Pereira", "Ribeiro",
		"Santos", "Souza", "Teixeira",
	}
)

// GenerateClassDataset creates a synthetic class of the given size. The
// seed parameter controls randomization - use time.Now().UnixNano() for
// non-deterministic generation or a fixed value for reproducible tests.
//
// Scores follow a rough bell shape around 6.5 on the 0-10 scale, clamped to
// the scale, so generated classes contain a realistic mix of approved,
// recovery, and failed students.
func GenerateClassDataset(size int, seed int64) *ClassDataset {
	rng := rand.New(rand.NewSource(seed))

	dataset := &ClassDataset{
		Metadata: DatasetMetadata{
			Name:        "Synthetic Class Dataset",
			Version:     "1.0.0",
			Source:      "Generated for testing",
			Description: "A synthetic class generated for exercising the grading pipeline. NOT REAL STUDENT DATA.",
			Seed:        seed,
			Size:        size,
		},
		Students: make([]DatasetStudent, 0, size),
	}

	for i := range size {
		dataset.Students = append(dataset.Students, DatasetStudent{
			ID:      int32(101 + i),
			Name:    generateStudentName(rng),
			Scores:  generateScores(rng, len(defaultAssessmentWeights)),
			Weights: append([]float32(nil), defaultAssessmentWeights...),
		})
	}
	return dataset
}

// GenerateClassDatasetDefault creates a dataset with a time-based seed.
func GenerateClassDatasetDefault(size int) *ClassDataset {
	return GenerateClassDataset(size, time.Now().UnixNano())
}

func generateStudentName(rng *rand.Rand) string {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	return fmt.Sprintf("%s %s", first, last)
}

// generateScores draws n scores from a clamped normal distribution centered
// slightly below the approval threshold.
func generateScores(rng *rand.Rand, n int) []float32 {
	scores := make([]float32, n)
	for i := range scores {
		score := float32(6.5 + rng.NormFloat64()*2.0)
		if score < 0 {
			score = 0
		}
		if score > 10 {
			score = 10
		}
		// Round to one decimal place like hand-entered grades.
		scores[i] = float32(int(score*10+0.5)) / 10
	}
	return scores
}
