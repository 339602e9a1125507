package report

import (
	"fmt"
	"path/filepath"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/Jasmynewlk/netflix-content-analysis/stats"
)

// Stable output filenames. Reruns overwrite rather than accumulate.
const (
	SummaryFileName = "summary.txt"
	TypeCSVFileName = "count_by_type.csv"
)

// Reporter writes the text summary and the CSV export together.
type Reporter struct {
	summaryWriter *SummaryWriter
	csvWriter     *TypeCSVWriter

	summaryPath string
	csvPath     string
}

// NewReporter creates both writers under outputDir.
func NewReporter(outputDir string) (*Reporter, error) {
	summaryPath := filepath.Join(outputDir, SummaryFileName)
	csvPath := filepath.Join(outputDir, TypeCSVFileName)

	summaryWriter, err := NewSummaryWriter(summaryPath)
	if err != nil {
		return nil, fmt.Errorf("create summary writer: %w", err)
	}

	csvWriter, err := NewTypeCSVWriter(csvPath)
	if err != nil {
		summaryWriter.Close()
		return nil, fmt.Errorf("create csv writer: %w", err)
	}

	return &Reporter{
		summaryWriter: summaryWriter,
		csvWriter:     csvWriter,
		summaryPath:   summaryPath,
		csvPath:       csvPath,
	}, nil
}

// Write renders sum into both outputs.
func (r *Reporter) Write(sum *stats.Summary) error {
	if err := r.summaryWriter.Write(sum); err != nil {
		return fmt.Errorf("summary write failed: %w", err)
	}
	if err := r.csvWriter.Write(sum.TypeCounts); err != nil {
		return fmt.Errorf("csv write failed: %w", err)
	}
	return nil
}

// Close closes both writers.
func (r *Reporter) Close() error {
	var errs []error

	if err := r.summaryWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("summary close failed: %w", err))
	}
	if err := r.csvWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("csv close failed: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors: %v", errs)
	}
	return nil
}

// Validate validates both output files. Call before Close.
func (r *Reporter) Validate() error {
	var errs []error

	if err := r.summaryWriter.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("summary validation failed: %w", err))
	}
	if err := r.csvWriter.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("csv validation failed: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation errors: %v", errs)
	}
	return nil
}

// Artifacts lists the files the reporter writes.
func (r *Reporter) Artifacts() []models.Artifact {
	return []models.Artifact{
		{Kind: models.KindSummary, Path: r.summaryPath},
		{Kind: models.KindTable, Path: r.csvPath},
	}
}
