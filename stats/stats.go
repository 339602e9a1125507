// Package stats aggregates descriptive statistics and frequency counts
// over the cleaned title table.
package stats

import (
	"sort"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DescriptiveStats is the five-number view of the cleaned durations.
type DescriptiveStats struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Defined reports whether the statistics exist. Nothing is defined over
// an empty sample.
func (d DescriptiveStats) Defined() bool {
	return d.Count > 0
}

// CategoryCount is one label's occurrence count.
type CategoryCount struct {
	Label string
	Count int
}

// YearCount is one release year's title count.
type YearCount struct {
	Year  int
	Count int
}

// YearSeries is a per-type series of title counts by release year,
// ordered by year.
type YearSeries struct {
	Label  string
	Points []YearCount
}

// Summary is the aggregate view consumed by the renderer and the
// reporter. It is computed once per run and never mutated afterwards.
type Summary struct {
	RowsLoaded   int
	UniqueTitles int

	Durations DescriptiveStats

	TypeCounts   []CategoryCount
	RatingCounts []CategoryCount
	YearSeries   []YearSeries

	DurationValues []float64 // every cleaned duration value, load order
	MinuteValues   []float64 // minute-unit subset, load order
}

// Aggregate computes the run's summary statistics. Duration statistics
// and frequency counts cover the cleaned table; the loaded table only
// contributes the row and unique-title totals shown in the report.
func Aggregate(loaded []*models.TitleRecord, cleaned []models.CleanedTitle) *Summary {
	s := &Summary{
		RowsLoaded:   len(loaded),
		UniqueTitles: uniqueTitles(loaded),
	}

	values := make([]float64, 0, len(cleaned))
	minutes := make([]float64, 0, len(cleaned))
	types := make(map[string]int)
	ratings := make(map[string]int)
	yearType := make(map[string]map[int]int)

	for _, ct := range cleaned {
		values = append(values, ct.Duration.Value)
		if ct.Duration.Unit == models.UnitMinutes {
			minutes = append(minutes, ct.Duration.Value)
		}

		types[ct.Type]++
		if ct.Rating != "" {
			ratings[ct.Rating]++
		}
		if ct.YearOK {
			years := yearType[ct.Type]
			if years == nil {
				years = make(map[int]int)
				yearType[ct.Type] = years
			}
			years[ct.Year]++
		}
	}

	s.DurationValues = values
	s.MinuteValues = minutes
	s.Durations = Describe(values)
	s.TypeCounts = sortedCounts(types)
	s.RatingCounts = sortedCounts(ratings)
	s.YearSeries = buildYearSeries(yearType)
	return s
}

// Describe computes count, mean, median, standard deviation, min and max
// over values. An empty sample yields the zero DescriptiveStats, whose
// Defined() is false.
func Describe(values []float64) DescriptiveStats {
	if len(values) == 0 {
		return DescriptiveStats{}
	}

	d := DescriptiveStats{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Median: median(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
	if len(values) > 1 {
		// Sample deviation needs at least two points.
		d.StdDev = stat.StdDev(values, nil)
	}
	return d
}

// median uses the midpoint convention: the middle element, or the mean
// of the two middle elements for even-sized samples. gonum's quantile
// kinds step along the empirical CDF and would return the lower sample
// for even sizes, which is not what spreadsheet users expect.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// TopN returns the first n entries of an already sorted count slice.
func TopN(counts []CategoryCount, n int) []CategoryCount {
	if n >= len(counts) {
		return counts
	}
	return counts[:n]
}

// sortedCounts orders labels by descending count, ties broken by label,
// so every artifact iterates categories deterministically run over run.
func sortedCounts(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, CategoryCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func buildYearSeries(byType map[string]map[int]int) []YearSeries {
	labels := make([]string, 0, len(byType))
	for label := range byType {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]YearSeries, 0, len(labels))
	for _, label := range labels {
		years := byType[label]
		points := make([]YearCount, 0, len(years))
		for year, count := range years {
			points = append(points, YearCount{Year: year, Count: count})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		out = append(out, YearSeries{Label: label, Points: points})
	}
	return out
}

func uniqueTitles(records []*models.TitleRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Title == "" {
			continue
		}
		seen[r.Title] = struct{}{}
	}
	return len(seen)
}
