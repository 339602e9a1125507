package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Jasmynewlk/netflix-content-analysis/config"
)

// Fetcher downloads the dataset file when it is not already on disk.
type Fetcher struct {
	client     *http.Client
	maxRetries int
	backoff    time.Duration
	backoffMax time.Duration
}

// NewFetcher builds a fetcher from the run configuration.
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: cfg.FetchTimeout},
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		backoffMax: cfg.RetryBackoffMax,
	}
}

// Fetch downloads rawURL to dest, retrying transient failures with
// exponential backoff. The destination only appears once the transfer
// completed; a failed attempt never leaves a partial file.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dest string) error {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoffDelay(attempt)
			slog.Debug("retrying dataset fetch",
				slog.Int("attempt", attempt),
				slog.Duration("backoff", delay),
				slog.String("url", rawURL),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return FetchError{URL: rawURL, Err: ctx.Err()}
			}
		}

		err := f.fetchOnce(ctx, rawURL, dest)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
	}
	return lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchError{URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("http status %d", resp.StatusCode)}
	}
	return writeAtomic(dest, resp.Body)
}

func (f *Fetcher) backoffDelay(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	base := f.backoff
	if base <= 0 {
		base = 100 * time.Millisecond
	}

	delay := base * time.Duration(1<<(attempt-1))
	if max := f.backoffMax; max > 0 && delay > max {
		delay = max
	}
	return delay
}

// retryable reports whether a fetch attempt is worth repeating: transport
// failures, server errors, and rate limiting are; other HTTP statuses are
// permanent.
func retryable(err error) bool {
	var fe FetchError
	if !errors.As(err, &fe) {
		return false
	}
	if fe.Status == 0 {
		return true
	}
	return fe.Status >= http.StatusInternalServerError || fe.Status == http.StatusTooManyRequests
}

// writeAtomic stages the download next to dest and renames it into place.
func writeAtomic(dest string, r io.Reader) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close download: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("move download into place: %w", err)
	}
	return nil
}
