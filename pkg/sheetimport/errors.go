package sheetimport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrWorksheetNotFound indicates the resolved worksheet is not in the workbook.
var ErrWorksheetNotFound = errors.New("no proper named worksheet found")

// ErrMalformedFile indicates rows that cannot be mapped onto the header row.
var ErrMalformedFile = parser.ErrMalformed

// ErrInvalidOptions indicates Options failed validation.
var ErrInvalidOptions = errors.New("invalid import options")

// ErrUnsupportedFormat indicates the file is not XLS, XLSX, CSV or ODS.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// WorksheetError reports which worksheet was looked for and what exists.
type WorksheetError struct {
	Requested string
	Available []string
}

func (e *WorksheetError) Error() string {
	if e.Requested == "" {
		return fmt.Sprintf("%v: no worksheet requested (available: %s)", ErrWorksheetNotFound, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("%v: %q (available: %s)", ErrWorksheetNotFound, e.Requested, strings.Join(e.Available, ", "))
}

func (e *WorksheetError) Unwrap() error {
	return ErrWorksheetNotFound
}

// RowError reports a malformed row. Row is the one-based spreadsheet row.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%v: row %d: %s", ErrMalformedFile, e.Row, e.Reason)
}

func (e *RowError) Unwrap() error {
	return ErrMalformedFile
}

// ImportError represents an error during an import step.
type ImportError struct {
	Path  string
	Stage string // "open", "resolve", "read", "map"
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import error in file %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(path, stage string, err error) *ImportError {
	return &ImportError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
