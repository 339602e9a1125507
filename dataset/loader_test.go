package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

var sheetPrefs = []string{"netflix_titles", "titles", "sheet1"}

const sampleCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Inception,Christopher Nolan,Leonardo DiCaprio,United States,"September 1, 2020",2010,PG-13,148 min,Action,A thief steals secrets through dreams.
s2,TV Show,Dark,Baran bo Odar,Louis Hofmann,Germany,"July 1, 2020",2017,TV-MA,3 Seasons,Sci-Fi,Missing children expose a town's secrets.
s3,Movie,Short One,,,,,2021,PG,12 min,Kids,Tiny film.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "titles.csv", sampleCSV)

	records, err := Load(path, sheetPrefs)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	first := records[0]
	if first.ShowID != "s1" || first.Type != "Movie" || first.Title != "Inception" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Duration != "148 min" || first.ReleaseYear != "2010" {
		t.Errorf("unexpected raw fields: duration=%q year=%q", first.Duration, first.ReleaseYear)
	}
	if records[1].Duration != "3 Seasons" {
		t.Errorf("second duration = %q, want %q", records[1].Duration, "3 Seasons")
	}
}

func TestLoadCSVSpacedHeaders(t *testing.T) {
	path := writeFile(t, "titles.csv", "Show ID,Type,Title,Release Year,Duration\ns1,Movie,Example,2020,90 min\n")

	records, err := Load(path, sheetPrefs)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].ShowID != "s1" || records[0].ReleaseYear != "2020" || records[0].Duration != "90 min" {
		t.Errorf("header normalization failed: %+v", records[0])
	}
}

func TestLoadCSVShortRow(t *testing.T) {
	path := writeFile(t, "titles.csv", "show_id,type,title,duration\ns1,Movie\n")

	records, err := Load(path, sheetPrefs)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Title != "" || records[0].Duration != "" {
		t.Errorf("short row should pad missing fields: %+v", records[0])
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	path := writeFile(t, "titles.csv", "show_id,type,title,duration\n")

	records, err := Load(path, sheetPrefs)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), sheetPrefs)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var le LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %T: %v", err, err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "titles.csv", "")

	_, err := Load(path, sheetPrefs)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestLoadUnrecognizedSchema(t *testing.T) {
	path := writeFile(t, "titles.csv", "foo,bar\n1,2\n")

	_, err := Load(path, sheetPrefs)
	if !errors.Is(err, ErrUnrecognizedSchema) {
		t.Fatalf("expected ErrUnrecognizedSchema, got %v", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "titles.pdf", "not a table")

	_, err := Load(path, sheetPrefs)
	var le LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError for unsupported extension, got %v", err)
	}
}

func writeWorkbook(t *testing.T, path string, sheets map[string][][]interface{}, order []string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for r, row := range sheets[sheet] {
			cellRef, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestLoadWorkbookPrefersNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.xlsx")
	header := []interface{}{"show_id", "type", "title", "release_year", "duration"}
	writeWorkbook(t, path, map[string][][]interface{}{
		"metadata": {
			{"note"},
			{"not the title table"},
		},
		"netflix_titles": {
			header,
			{"s1", "Movie", "Inception", 2010, "148 min"},
			{"s2", "TV Show", "Dark", 2017, "3 Seasons"},
		},
	}, []string{"metadata", "netflix_titles"})

	records, err := Load(path, sheetPrefs)
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Title != "Inception" || records[0].ReleaseYear != "2010" {
		t.Errorf("unexpected record from preferred sheet: %+v", records[0])
	}
}

func TestLoadWorkbookFallsBackToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.xlsx")
	writeWorkbook(t, path, map[string][][]interface{}{
		"Data": {
			{"show_id", "type", "title", "duration"},
			{"s1", "Movie", "Example", "90 min"},
		},
	}, []string{"Data"})

	records, err := Load(path, sheetPrefs)
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Example" {
		t.Fatalf("fallback sheet not loaded: %+v", records)
	}
}

func TestLoadCorruptWorkbook(t *testing.T) {
	path := writeFile(t, "titles.xlsx", "this is not a zip archive")

	_, err := Load(path, sheetPrefs)
	var le LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError for corrupt workbook, got %v", err)
	}
}

func TestCSVAndWorkbookLoadIdentically(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "titles.csv")
	if err := os.WriteFile(csvPath, []byte("show_id,type,title,release_year,duration\ns1,Movie,Inception,2010,148 min\ns2,TV Show,Dark,2017,3 Seasons\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	xlsxPath := filepath.Join(dir, "titles.xlsx")
	writeWorkbook(t, xlsxPath, map[string][][]interface{}{
		"netflix_titles": {
			{"show_id", "type", "title", "release_year", "duration"},
			{"s1", "Movie", "Inception", 2010, "148 min"},
			{"s2", "TV Show", "Dark", 2017, "3 Seasons"},
		},
	}, []string{"netflix_titles"})

	fromCSV, err := Load(csvPath, sheetPrefs)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	fromXLSX, err := Load(xlsxPath, sheetPrefs)
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}

	if !reflect.DeepEqual(fromCSV, fromXLSX) {
		t.Fatalf("formats disagree:\ncsv:  %+v\nxlsx: %+v", fromCSV[0], fromXLSX[0])
	}
}
