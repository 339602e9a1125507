// Package dataset loads the Netflix titles table from spreadsheet files
// and optionally fetches the source file over HTTP.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/Jasmynewlk/netflix-content-analysis/parser"
	"github.com/xuri/excelize/v2"
)

// schemaColumns are the canonical column names of the titles dataset.
// Headers are matched after normalization; columns outside this set are
// ignored, missing ones load as empty fields.
var schemaColumns = []string{
	"show_id",
	"type",
	"title",
	"director",
	"cast",
	"country",
	"date_added",
	"release_year",
	"rating",
	"duration",
	"listed_in",
	"description",
}

// Load reads the dataset at path into memory. Workbooks (.xlsx) pick a
// sheet by the preference list; .csv files are read directly. Any failure
// to produce a table is a LoadError.
func Load(path string, sheetPrefs []string) ([]*models.TitleRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadWorkbook(path, sheetPrefs)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, LoadError{Path: path, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(path))}
	}
}

func loadWorkbook(path string, sheetPrefs []string) ([]*models.TitleRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList(), sheetPrefs)
	if sheet == "" {
		return nil, LoadError{Path: path, Err: ErrEmptyDataset}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, LoadError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	records, err := buildRecords(rows)
	if err != nil {
		return nil, LoadError{Path: path, Err: err}
	}
	return records, nil
}

func loadCSV(path string) ([]*models.TitleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadError{Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, LoadError{Path: path, Err: fmt.Errorf("read csv: %w", err)}
	}
	records, err := buildRecords(rows)
	if err != nil {
		return nil, LoadError{Path: path, Err: err}
	}
	return records, nil
}

// pickSheet returns the first preferred name present in the workbook,
// compared case-insensitively, falling back to the first sheet.
func pickSheet(sheets, prefer []string) string {
	for _, want := range prefer {
		for _, have := range sheets {
			if strings.EqualFold(have, want) {
				return have
			}
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}

func buildRecords(rows [][]string) ([]*models.TitleRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		canon := parser.NormalizeHeader(name)
		if _, ok := idx[canon]; !ok {
			idx[canon] = i
		}
	}
	known := 0
	for _, name := range schemaColumns {
		if _, ok := idx[name]; ok {
			known++
		}
	}
	if known == 0 {
		return nil, ErrUnrecognizedSchema
	}

	records := make([]*models.TitleRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, &models.TitleRecord{
			ShowID:      cell(row, idx, "show_id"),
			Type:        cell(row, idx, "type"),
			Title:       cell(row, idx, "title"),
			Director:    cell(row, idx, "director"),
			Cast:        cell(row, idx, "cast"),
			Country:     cell(row, idx, "country"),
			DateAdded:   cell(row, idx, "date_added"),
			ReleaseYear: cell(row, idx, "release_year"),
			Rating:      cell(row, idx, "rating"),
			Duration:    cell(row, idx, "duration"),
			ListedIn:    cell(row, idx, "listed_in"),
			Description: cell(row, idx, "description"),
		})
	}
	return records, nil
}

// cell tolerates short rows: spreadsheet readers drop trailing empty
// cells, so a missing index reads as the empty string.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
