// Package models defines data structures for the analysis run.
package models

import "time"

// TitleRecord represents one row of the Netflix titles dataset. Every
// field holds the raw cell text as loaded; numeric attributes are derived
// during cleaning and never written back.
type TitleRecord struct {
	ShowID      string `csv:"show_id" json:"show_id"`
	Type        string `csv:"type" json:"type"`
	Title       string `csv:"title" json:"title"`
	Director    string `csv:"director" json:"director"`
	Cast        string `csv:"cast" json:"cast"`
	Country     string `csv:"country" json:"country"`
	DateAdded   string `csv:"date_added" json:"date_added"`
	ReleaseYear string `csv:"release_year" json:"release_year"`
	Rating      string `csv:"rating" json:"rating"`
	Duration    string `csv:"duration" json:"duration"`
	ListedIn    string `csv:"listed_in" json:"listed_in"`
	Description string `csv:"description" json:"description"`
}

// DurationUnit labels the unit found next to the numeric duration token.
type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitSeasons DurationUnit = "seasons"
	UnitUnknown DurationUnit = ""
)

// Duration is the numeric value extracted from a raw duration cell. The
// dataset mixes movie minutes and show season counts in one column; the
// unit is kept so chart code can tell them apart, but aggregate statistics
// run over the mixed values on purpose.
type Duration struct {
	Value float64
	Unit  DurationUnit
}

// CleanedTitle pairs a source record with the attributes derived from it.
// Only records whose duration field parsed become CleanedTitles; the
// source record itself is never modified.
type CleanedTitle struct {
	Record   *TitleRecord
	Duration Duration
	Type     string // normalized content type label
	Rating   string // normalized rating, empty when missing
	Year     int    // release year, meaningful only when YearOK
	YearOK   bool
}

// Artifact is one file written to the output directory.
type Artifact struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Artifact kinds.
const (
	KindChart   = "chart"
	KindSummary = "summary"
	KindTable   = "table"
)

// AnalysisResult holds the overall outcome of an analysis run.
type AnalysisResult struct {
	StartTime     time.Time
	EndTime       time.Time
	RowsLoaded    int
	RowsCleaned   int
	SkipsByReason map[string]int
	Artifacts     []Artifact
}

// Skips returns the total number of records excluded during cleaning.
func (r *AnalysisResult) Skips() int {
	total := 0
	for _, n := range r.SkipsByReason {
		total += n
	}
	return total
}
