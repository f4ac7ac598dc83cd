package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/edulytics/go-classrank/internal/domain"
	"github.com/edulytics/go-classrank/internal/testutils"
)

func main() {
	var (
		size       = flag.Int("size", 40, "Number of students to generate")
		seed       = flag.Int64("seed", 0, "RNG seed (0 uses the current time)")
		outputPath = flag.String("output", "testdata/datasets/sample_class.yaml", "Output file path")
	)
	flag.Parse()

	var dataset *testutils.ClassDataset
	if *seed == 0 {
		dataset = testutils.GenerateClassDatasetDefault(*size)
	} else {
		dataset = testutils.GenerateClassDataset(*size, *seed)
	}

	if err := testutils.SaveClassDataset(dataset, *outputPath); err != nil {
		log.Fatalf("Failed to save dataset: %v", err)
	}

	stats, err := testutils.ComputeDatasetStatistics(dataset)
	if err != nil {
		log.Fatalf("Failed to compute statistics: %v", err)
	}

	fmt.Printf("Generated class dataset:\n")
	fmt.Printf("- Path: %s\n", *outputPath)
	fmt.Printf("- Students: %d\n", stats.TotalStudents)
	fmt.Printf("- Average range: %.2f - %.2f (mean %.2f)\n",
		stats.MinAverage, stats.MaxAverage, stats.MeanAverage)
	fmt.Printf("- Approved: %d, Recovery: %d, Failed: %d\n",
		stats.StatusCount[domain.StatusApproved],
		stats.StatusCount[domain.StatusRecovery],
		stats.StatusCount[domain.StatusFailed])
	fmt.Printf("\nDataset saved successfully!\n")
}
