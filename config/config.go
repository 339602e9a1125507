package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds analysis run configuration.
type Config struct {
	InputFile       string        // dataset spreadsheet path (.xlsx or .csv)
	OutputDir       string        // directory all artifacts are written to
	DatasetURL      string        // optional download source used when InputFile is absent
	SheetNames      []string      // preferred workbook sheet names, in order
	HistogramBins   int           // bin count for the duration histogram
	TopRatings      int           // number of rating labels on the ratings chart
	ParseCacheSize  int           // LRU entries for duration parse results
	FetchTimeout    time.Duration // per-request timeout for the dataset fetch
	MaxRetries      int           // retry attempts for the dataset fetch
	RetryBackoff    time.Duration // initial fetch retry backoff
	RetryBackoffMax time.Duration // fetch retry backoff cap
	MetricsAddr     string        // Prometheus listen address, empty disables
	Verbose         bool
}

// DefaultConfig returns the defaults matching the documented outputs/
// contract: dataset next to the binary, artifacts under outputs/.
func DefaultConfig() *Config {
	return &Config{
		InputFile:       "netflix_titles.xlsx",
		OutputDir:       "outputs",
		DatasetURL:      "",
		SheetNames:      []string{"netflix_titles", "titles", "sheet1"},
		HistogramBins:   25,
		TopRatings:      10,
		ParseCacheSize:  1024,
		FetchTimeout:    30 * time.Second,
		MaxRetries:      2,
		RetryBackoff:    200 * time.Millisecond,
		RetryBackoffMax: 2 * time.Second,
		MetricsAddr:     "",
		Verbose:         false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.DatasetURL != "" {
		parsedURL, err := url.Parse(c.DatasetURL)
		if err != nil {
			return fmt.Errorf("invalid dataset URL: %w", err)
		}
		if parsedURL.Host == "" {
			return fmt.Errorf("dataset URL must include a host")
		}
	}
	if len(c.SheetNames) == 0 {
		return fmt.Errorf("sheet name preference cannot be empty")
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("histogram bins must be positive")
	}
	if c.TopRatings <= 0 {
		return fmt.Errorf("top ratings must be positive")
	}
	if c.ParseCacheSize <= 0 {
		return fmt.Errorf("parse cache size must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff cannot be negative")
	}
	if c.RetryBackoffMax < 0 {
		return fmt.Errorf("retry backoff max cannot be negative")
	}
	if c.RetryBackoffMax > 0 && c.RetryBackoff > c.RetryBackoffMax {
		return fmt.Errorf("retry backoff (%s) cannot exceed retry backoff max (%s)", c.RetryBackoff, c.RetryBackoffMax)
	}
	return nil
}
