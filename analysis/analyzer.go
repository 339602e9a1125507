// Package analysis orchestrates the pipeline: load the dataset, clean
// the duration column, aggregate statistics, render charts and write
// reports. Stages run sequentially; a failed stage aborts the run.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/Jasmynewlk/netflix-content-analysis/charts"
	"github.com/Jasmynewlk/netflix-content-analysis/config"
	"github.com/Jasmynewlk/netflix-content-analysis/dataset"
	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/Jasmynewlk/netflix-content-analysis/report"
	"github.com/Jasmynewlk/netflix-content-analysis/stats"
)

// Analyzer runs one analysis over one input file.
type Analyzer struct {
	cfg     *config.Config
	cleaner *Cleaner
	Metrics *Metrics
}

// New builds an analyzer configured from cfg.
func New(cfg *config.Config) (*Analyzer, error) {
	metrics := NewMetrics()
	cleaner, err := NewCleaner(cfg.ParseCacheSize, metrics)
	if err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg, cleaner: cleaner, Metrics: metrics}, nil
}

// Run executes the pipeline once and reports what it produced.
func (a *Analyzer) Run(ctx context.Context) (*models.AnalysisResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	if err := a.ensureInput(ctx); err != nil {
		return nil, err
	}

	stageStart := time.Now()
	records, err := dataset.Load(a.cfg.InputFile, a.cfg.SheetNames)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	a.Metrics.AddRowsLoaded(len(records))
	a.Metrics.ObserveStage("load", time.Since(stageStart))
	slog.Info("dataset loaded",
		slog.String("input", a.cfg.InputFile),
		slog.Int("rows", len(records)),
	)

	stageStart = time.Now()
	cleaned, skips := a.cleaner.Clean(records)
	a.Metrics.AddRowsCleaned(len(cleaned))
	a.Metrics.ObserveStage("clean", time.Since(stageStart))
	slog.Info("duration column cleaned",
		slog.Int("kept", len(cleaned)),
		slog.Int("skipped", len(records)-len(cleaned)),
	)

	stageStart = time.Now()
	sum := stats.Aggregate(records, cleaned)
	a.Metrics.ObserveStage("aggregate", time.Since(stageStart))

	stageStart = time.Now()
	renderer := charts.NewRenderer(a.cfg.OutputDir, a.cfg.HistogramBins, a.cfg.TopRatings)
	chartArtifacts, err := renderer.RenderAll(sum)
	if err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}
	a.Metrics.ObserveStage("render", time.Since(stageStart))
	slog.Info("charts rendered", slog.Int("files", len(chartArtifacts)))

	stageStart = time.Now()
	reporter, err := report.NewReporter(a.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	if err := reporter.Write(sum); err != nil {
		reporter.Close()
		return nil, fmt.Errorf("write reports: %w", err)
	}
	if err := reporter.Validate(); err != nil {
		reporter.Close()
		return nil, fmt.Errorf("validate reports: %w", err)
	}
	if err := reporter.Close(); err != nil {
		return nil, fmt.Errorf("close reports: %w", err)
	}
	a.Metrics.ObserveStage("report", time.Since(stageStart))

	artifacts := append(chartArtifacts, reporter.Artifacts()...)
	for _, artifact := range artifacts {
		a.Metrics.IncArtifact(artifact.Kind)
	}
	slog.Info("analysis complete",
		slog.Int("artifacts", len(artifacts)),
		slog.String("output_dir", a.cfg.OutputDir),
	)

	return &models.AnalysisResult{
		StartTime:     start,
		EndTime:       time.Now(),
		RowsLoaded:    len(records),
		RowsCleaned:   len(cleaned),
		SkipsByReason: skips,
		Artifacts:     artifacts,
	}, nil
}

// ensureInput downloads the dataset when the input file is absent and a
// source URL is configured. Without a URL a missing file surfaces as a
// load error.
func (a *Analyzer) ensureInput(ctx context.Context) error {
	if a.cfg.DatasetURL == "" {
		return nil
	}

	if _, err := os.Stat(a.cfg.InputFile); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat input file: %w", err)
	}

	slog.Info("input file missing, fetching dataset",
		slog.String("url", a.cfg.DatasetURL),
		slog.String("dest", a.cfg.InputFile),
	)
	fetcher := dataset.NewFetcher(a.cfg)
	if err := fetcher.Fetch(ctx, a.cfg.DatasetURL, a.cfg.InputFile); err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}
	return nil
}
