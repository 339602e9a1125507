// Package report writes the plain-text run summary and the CSV export
// of the aggregated counts.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Jasmynewlk/netflix-content-analysis/stats"
)

// SummaryWriter writes the human-readable summary.
type SummaryWriter struct {
	file *os.File
}

// NewSummaryWriter initialises the summary writer.
func NewSummaryWriter(filename string) (*SummaryWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create summary file: %w", err)
	}
	return &SummaryWriter{file: f}, nil
}

// Write renders sum as labeled text.
func (sw *SummaryWriter) Write(sum *stats.Summary) error {
	if _, err := sw.file.WriteString(renderSummary(sum)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Close closes the file handle.
func (sw *SummaryWriter) Close() error {
	return sw.file.Close()
}

// Validate ensures the summary has content. Call before Close.
func (sw *SummaryWriter) Validate() error {
	info, err := sw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat summary file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("summary file is empty")
	}
	return nil
}

// renderSummary builds the summary text. The layout is deterministic so
// repeated runs over the same input produce byte-identical files.
func renderSummary(sum *stats.Summary) string {
	var b strings.Builder

	b.WriteString("Netflix Titles – Quick Summary\n")
	b.WriteString(strings.Repeat("=", 32) + "\n\n")

	fmt.Fprintf(&b, "Rows loaded: %d\n", sum.RowsLoaded)
	fmt.Fprintf(&b, "Unique titles: %d\n", sum.UniqueTitles)
	fmt.Fprintf(&b, "Rows with numeric duration: %d\n", sum.Durations.Count)
	b.WriteString("\n")

	d := sum.Durations
	b.WriteString("Duration statistics\n")
	fmt.Fprintf(&b, "  count:  %d\n", d.Count)
	fmt.Fprintf(&b, "  mean:   %s\n", formatStat(d, d.Mean))
	fmt.Fprintf(&b, "  median: %s\n", formatStat(d, d.Median))
	fmt.Fprintf(&b, "  std:    %s\n", formatStat(d, d.StdDev))
	fmt.Fprintf(&b, "  min:    %s\n", formatStat(d, d.Min))
	fmt.Fprintf(&b, "  max:    %s\n", formatStat(d, d.Max))
	b.WriteString("\n")

	b.WriteString("Titles by type\n")
	if len(sum.TypeCounts) == 0 {
		b.WriteString("  (no rows)\n")
		return b.String()
	}
	width := 0
	for _, c := range sum.TypeCounts {
		if len(c.Label) > width {
			width = len(c.Label)
		}
	}
	for _, c := range sum.TypeCounts {
		fmt.Fprintf(&b, "  %-*s  %d\n", width, c.Label, c.Count)
	}
	return b.String()
}

// formatStat renders one statistic, or "undefined" for an empty sample.
func formatStat(d stats.DescriptiveStats, v float64) string {
	if !d.Defined() {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// TypeCSVWriter exports per-category counts as CSV.
type TypeCSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewTypeCSVWriter initialises the CSV writer and writes the header row.
func NewTypeCSVWriter(filename string) (*TypeCSVWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"type", "count"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush csv header: %w", err)
	}

	return &TypeCSVWriter{file: f, writer: writer}, nil
}

// Write appends one row per category, preserving the aggregated order.
func (tw *TypeCSVWriter) Write(counts []stats.CategoryCount) error {
	for _, c := range counts {
		if err := tw.writer.Write([]string{c.Label, strconv.Itoa(c.Count)}); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	tw.writer.Flush()
	if err := tw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// Close flushes and closes the file handle.
func (tw *TypeCSVWriter) Close() error {
	tw.writer.Flush()
	if err := tw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return tw.file.Close()
}

// Validate ensures the file has content. Call before Close.
func (tw *TypeCSVWriter) Validate() error {
	info, err := tw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat csv file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("csv file is empty")
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
