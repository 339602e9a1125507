package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Jasmynewlk/netflix-content-analysis/analysis"
	"github.com/Jasmynewlk/netflix-content-analysis/config"
	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defaultCfg := config.DefaultConfig()
	inputDefault := defaultCfg.InputFile
	if value, ok := config.EnvString("NETFLIX_INPUT"); ok {
		inputDefault = value
	}
	outputDirDefault := defaultCfg.OutputDir
	if value, ok := config.EnvString("NETFLIX_OUTPUT_DIR"); ok {
		outputDirDefault = value
	}
	datasetURLDefault := defaultCfg.DatasetURL
	if value, ok := config.EnvString("NETFLIX_DATASET_URL"); ok {
		datasetURLDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("NETFLIX_METRICS_ADDR"); ok {
		metricsDefault = value
	}
	binsDefault := defaultCfg.HistogramBins
	if value, ok, err := config.EnvInt("NETFLIX_BINS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid NETFLIX_BINS: %v\n", err)
		os.Exit(1)
	} else if ok {
		binsDefault = value
	}

	input := flag.String("input", inputDefault, "Input dataset path (.xlsx or .csv)")
	outputDir := flag.String("output-dir", outputDirDefault, "Directory all artifacts are written to")
	datasetURL := flag.String("dataset-url", datasetURLDefault, "Optional URL to download the dataset from when the input file is absent")
	bins := flag.Int("bins", binsDefault, "Histogram bin count for movie durations")
	topRatings := flag.Int("top-ratings", defaultCfg.TopRatings, "Number of rating labels on the ratings chart")
	cacheSize := flag.Int("cache-size", defaultCfg.ParseCacheSize, "LRU entries for duration parse results")
	fetchTimeoutMs := flag.Int("fetch-timeout", int(defaultCfg.FetchTimeout/time.Millisecond), "Dataset fetch timeout (milliseconds)")
	maxRetries := flag.Int("max-retries", defaultCfg.MaxRetries, "Maximum dataset fetch retries")
	retryBackoffMs := flag.Int("retry-backoff", int(defaultCfg.RetryBackoff/time.Millisecond), "Initial fetch retry backoff (milliseconds)")
	retryBackoffMaxMs := flag.Int("retry-backoff-max", int(defaultCfg.RetryBackoffMax/time.Millisecond), "Maximum fetch retry backoff (milliseconds)")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := buildConfigFromFlags(*input, *outputDir, *datasetURL, *bins, *topRatings, *cacheSize, *fetchTimeoutMs, *maxRetries, *retryBackoffMs, *retryBackoffMaxMs, *verbose, *metricsAddr)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting analysis",
		slog.String("input", cfg.InputFile),
		slog.String("output_dir", cfg.OutputDir),
	)

	analyzer, err := analysis.New(cfg)
	if err != nil {
		slog.Error("initialising analyzer", slog.Any("error", err))
		os.Exit(1)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && analyzer.Metrics != nil {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(analyzer.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	startTime := time.Now()
	result, err := analyzer.Run(context.Background())
	if err != nil {
		slog.Error("analysis failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, time.Since(startTime), cfg.OutputDir)
}

func buildConfigFromFlags(input, outputDir, datasetURL string, bins, topRatings, cacheSize, fetchTimeoutMs, maxRetries, retryBackoffMs, retryBackoffMaxMs int, verbose bool, metricsAddr string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.InputFile = input
	cfg.OutputDir = outputDir
	cfg.DatasetURL = datasetURL
	cfg.HistogramBins = bins
	cfg.TopRatings = topRatings
	cfg.ParseCacheSize = cacheSize
	cfg.FetchTimeout = time.Duration(fetchTimeoutMs) * time.Millisecond
	cfg.MaxRetries = maxRetries
	cfg.RetryBackoff = time.Duration(retryBackoffMs) * time.Millisecond
	cfg.RetryBackoffMax = time.Duration(retryBackoffMaxMs) * time.Millisecond
	cfg.Verbose = verbose
	cfg.MetricsAddr = metricsAddr
	return cfg
}

func printSummary(result *models.AnalysisResult, duration time.Duration, outputDir string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Analysis complete")

	fmt.Printf("  Rows loaded:   %d\n", result.RowsLoaded)
	fmt.Printf("  Rows cleaned:  %d\n", result.RowsCleaned)
	fmt.Printf("  Rows skipped:  %d\n", result.Skips())
	if len(result.SkipsByReason) > 0 {
		fmt.Printf("  Skip reasons:  %v\n", result.SkipsByReason)
	}
	fmt.Printf("  Artifacts:     %d\n", len(result.Artifacts))
	fmt.Printf("  Duration:      %v\n", duration)
	fmt.Printf("  Output dir:    %s\n", outputDir)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
