package dataset

import (
	"errors"
	"fmt"
)

// Load failure causes wrapped inside LoadError.
var (
	ErrEmptyDataset       = errors.New("dataset has no header row")
	ErrUnrecognizedSchema = errors.New("header matches no known column")
)

// LoadError indicates the input dataset could not be loaded. It is fatal:
// the run cannot proceed without the table.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}

// FetchError indicates the dataset download failed. Status carries the
// HTTP status code when a response arrived, 0 for transport failures.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}
