package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/Jasmynewlk/netflix-content-analysis/stats"
)

func cleanedMovie(typ, rating string, minutes float64, year int) models.CleanedTitle {
	unit := models.UnitMinutes
	if typ == "TV Show" {
		unit = models.UnitSeasons
	}
	return models.CleanedTitle{
		Record:   &models.TitleRecord{Type: typ, Rating: rating},
		Duration: models.Duration{Value: minutes, Unit: unit},
		Type:     typ,
		Rating:   rating,
		Year:     year,
		YearOK:   year != 0,
	}
}

func TestSummaryWriterOutput(t *testing.T) {
	records := []*models.TitleRecord{
		{Title: "Inception"},
		{Title: "Dark"},
		{Title: "Dark"},
	}
	cleaned := []models.CleanedTitle{
		cleanedMovie("Movie", "PG", 90, 2010),
		cleanedMovie("Movie", "PG-13", 120, 2012),
	}
	sum := stats.Aggregate(records, cleaned)

	path := filepath.Join(t.TempDir(), "summary.txt")
	writer, err := NewSummaryWriter(path)
	if err != nil {
		t.Fatalf("create summary writer: %v", err)
	}
	if err := writer.Write(sum); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate summary: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close summary: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}

	want := "Netflix Titles – Quick Summary\n" +
		"================================\n" +
		"\n" +
		"Rows loaded: 3\n" +
		"Unique titles: 2\n" +
		"Rows with numeric duration: 2\n" +
		"\n" +
		"Duration statistics\n" +
		"  count:  2\n" +
		"  mean:   105.00\n" +
		"  median: 105.00\n" +
		"  std:    21.21\n" +
		"  min:    90.00\n" +
		"  max:    120.00\n" +
		"\n" +
		"Titles by type\n" +
		"  Movie  2\n"
	if string(got) != want {
		t.Fatalf("summary mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSummaryWriterUndefinedStats(t *testing.T) {
	sum := stats.Aggregate(nil, nil)

	path := filepath.Join(t.TempDir(), "summary.txt")
	writer, err := NewSummaryWriter(path)
	if err != nil {
		t.Fatalf("create summary writer: %v", err)
	}
	if err := writer.Write(sum); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate summary: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close summary: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	text := string(got)

	for _, want := range []string{
		"  count:  0\n",
		"  mean:   undefined\n",
		"  median: undefined\n",
		"  std:    undefined\n",
		"  min:    undefined\n",
		"  max:    undefined\n",
		"  (no rows)\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestTypeCSVWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count_by_type.csv")

	writer, err := NewTypeCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}
	counts := []stats.CategoryCount{
		{Label: "Movie", Count: 2},
		{Label: "TV Show", Count: 1},
	}
	if err := writer.Write(counts); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records=%d, want 3", len(records))
	}
	if records[0][0] != "type" || records[0][1] != "count" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Movie" || records[1][1] != "2" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
}

func TestTypeCSVWriterHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count_by_type.csv")

	writer, err := NewTypeCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}
	if err := writer.Write(nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if string(got) != "type,count\n" {
		t.Fatalf("unexpected csv content: %q", got)
	}
}

func TestReporterWritesBothArtifacts(t *testing.T) {
	cleaned := []models.CleanedTitle{
		cleanedMovie("Movie", "PG", 90, 2010),
		cleanedMovie("TV Show", "TV-MA", 2, 2017),
	}
	sum := stats.Aggregate(nil, cleaned)

	dir := t.TempDir()
	reporter, err := NewReporter(dir)
	if err != nil {
		t.Fatalf("create reporter: %v", err)
	}
	if err := reporter.Write(sum); err != nil {
		t.Fatalf("write reporter: %v", err)
	}
	if err := reporter.Validate(); err != nil {
		t.Fatalf("validate reporter: %v", err)
	}
	if err := reporter.Close(); err != nil {
		t.Fatalf("close reporter: %v", err)
	}

	artifacts := reporter.Artifacts()
	if len(artifacts) != 2 {
		t.Fatalf("artifacts=%d, want 2", len(artifacts))
	}
	if artifacts[0].Kind != models.KindSummary || artifacts[1].Kind != models.KindTable {
		t.Fatalf("unexpected artifact kinds: %+v", artifacts)
	}
	for _, a := range artifacts {
		if info, err := os.Stat(a.Path); err != nil || info.Size() == 0 {
			t.Fatalf("artifact %s missing or empty", a.Path)
		}
	}
}

func TestReporterDeterministic(t *testing.T) {
	records := []*models.TitleRecord{{Title: "A"}, {Title: "B"}}
	cleaned := []models.CleanedTitle{
		cleanedMovie("Movie", "PG", 90, 2010),
		cleanedMovie("Movie", "R", 120, 2011),
		cleanedMovie("TV Show", "TV-MA", 3, 2017),
	}

	dir := t.TempDir()
	run := func() (summary, table []byte) {
		sum := stats.Aggregate(records, cleaned)
		reporter, err := NewReporter(dir)
		if err != nil {
			t.Fatalf("create reporter: %v", err)
		}
		if err := reporter.Write(sum); err != nil {
			t.Fatalf("write reporter: %v", err)
		}
		if err := reporter.Close(); err != nil {
			t.Fatalf("close reporter: %v", err)
		}

		summary, err = os.ReadFile(filepath.Join(dir, SummaryFileName))
		if err != nil {
			t.Fatalf("read summary: %v", err)
		}
		table, err = os.ReadFile(filepath.Join(dir, TypeCSVFileName))
		if err != nil {
			t.Fatalf("read csv: %v", err)
		}
		return summary, table
	}

	firstSummary, firstTable := run()
	secondSummary, secondTable := run()

	if !bytes.Equal(firstSummary, secondSummary) {
		t.Fatalf("summary differs between identical runs")
	}
	if !bytes.Equal(firstTable, secondTable) {
		t.Fatalf("csv differs between identical runs")
	}
}
