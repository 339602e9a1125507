// Package charts renders the analysis figures as PNG files in the
// output directory. Charts whose backing data is empty are skipped
// rather than rendered blank.
package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/Jasmynewlk/netflix-content-analysis/stats"
)

// canvas size for every chart, 10x5 inches
const (
	canvasWidth  = 10 * vg.Inch
	canvasHeight = 5 * vg.Inch
)

// Renderer draws charts from an aggregated summary.
type Renderer struct {
	outputDir string
	bins      int
	topN      int
}

// NewRenderer returns a Renderer writing into outputDir. bins controls
// the duration histogram, topN the ratings bar chart.
func NewRenderer(outputDir string, bins, topN int) *Renderer {
	return &Renderer{outputDir: outputDir, bins: bins, topN: topN}
}

// RenderAll draws every chart that has data and returns the artifacts
// written. Filenames are stable across runs.
func (r *Renderer) RenderAll(sum *stats.Summary) ([]models.Artifact, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	figures := []struct {
		name   string
		render func(*stats.Summary, string) (bool, error)
	}{
		{"movie_duration_hist.png", r.durationHistogram},
		{"count_by_type.png", r.typeBars},
		{"top_10_ratings.png", r.ratingBars},
		{"titles_by_year_by_type.png", r.yearLines},
	}

	artifacts := make([]models.Artifact, 0, len(figures))
	for _, fig := range figures {
		path := filepath.Join(r.outputDir, fig.name)
		drawn, err := fig.render(sum, path)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", fig.name, err)
		}
		if drawn {
			artifacts = append(artifacts, models.Artifact{Kind: models.KindChart, Path: path})
		}
	}
	return artifacts, nil
}

// durationHistogram draws the distribution of minute-unit durations.
func (r *Renderer) durationHistogram(sum *stats.Summary, path string) (bool, error) {
	if len(sum.MinuteValues) == 0 {
		return false, nil
	}

	p := plot.New()
	p.Title.Text = "Distribution of movie durations (minutes)"
	p.X.Label.Text = "Duration (minutes)"
	p.Y.Label.Text = "Number of movies"

	hist, err := plotter.NewHist(plotter.Values(sum.MinuteValues), r.bins)
	if err != nil {
		return false, err
	}
	hist.FillColor = plotutil.Color(0)
	p.Add(hist)

	return true, p.Save(canvasWidth, canvasHeight, path)
}

// typeBars draws one vertical bar per content type.
func (r *Renderer) typeBars(sum *stats.Summary, path string) (bool, error) {
	if len(sum.TypeCounts) == 0 {
		return false, nil
	}

	p := plot.New()
	p.Title.Text = "Netflix titles by type"
	p.Y.Label.Text = "Number of titles"

	values := make(plotter.Values, len(sum.TypeCounts))
	labels := make([]string, len(sum.TypeCounts))
	for i, c := range sum.TypeCounts {
		values[i] = float64(c.Count)
		labels[i] = c.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return false, err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	return true, p.Save(canvasWidth, canvasHeight, path)
}

// ratingBars draws the top-N ratings as horizontal bars, the least
// frequent of them at the bottom.
func (r *Renderer) ratingBars(sum *stats.Summary, path string) (bool, error) {
	top := stats.TopN(sum.RatingCounts, r.topN)
	if len(top) == 0 {
		return false, nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Netflix ratings (by count)", r.topN)
	p.X.Label.Text = "Number of titles"

	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, c := range top {
		j := len(top) - 1 - i
		values[j] = float64(c.Count)
		labels[j] = c.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return false, err
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(1)
	p.Add(bars)
	p.NominalY(labels...)

	return true, p.Save(canvasWidth, canvasHeight, path)
}

// yearLines draws one line per content type of title counts by release
// year.
func (r *Renderer) yearLines(sum *stats.Summary, path string) (bool, error) {
	if len(sum.YearSeries) == 0 {
		return false, nil
	}

	p := plot.New()
	p.Title.Text = "Netflix titles by release year (by type)"
	p.X.Label.Text = "Release year"
	p.Y.Label.Text = "Number of titles"

	for i, series := range sum.YearSeries {
		xys := make(plotter.XYs, len(series.Points))
		for j, pt := range series.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = float64(pt.Count)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return false, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(series.Label, line)
	}
	p.Legend.Top = true

	return true, p.Save(canvasWidth, canvasHeight, path)
}
