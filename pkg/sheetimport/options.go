// Package sheetimport converts one worksheet of a spreadsheet file into
// records that can be used to build database entities.
package sheetimport

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
)

// ImportType represents how imported records relate to existing rows.
type ImportType string

const (
	// TypeDefault keeps the primary key from the file so existing rows are updated.
	TypeDefault ImportType = ""
	// TypeUpdate behaves like TypeDefault but is never replaced by a
	// configured default type.
	TypeUpdate ImportType = "update"
	// TypeAppend drops the primary key so every record becomes a new row.
	TypeAppend ImportType = "append"
)

// Options configures an import.
type Options struct {
	// Worksheet selects a worksheet by name when the file has several.
	Worksheet string `json:"worksheet,omitempty"`
	// WorksheetIndex selects a worksheet by zero-based position. It takes
	// precedence over Worksheet when the index exists.
	WorksheetIndex *int `json:"worksheet_index,omitempty" validate:"omitempty,min=0"`
	// DefaultWorksheet is the last-resort worksheet name, typically the name
	// of the resource being imported.
	DefaultWorksheet string `json:"default_worksheet,omitempty"`
	// Type is the import mode.
	Type ImportType `json:"type,omitempty" validate:"omitempty,oneof=append update"`
	// Encoding is the character set of CSV and XLS files (default utf-8).
	Encoding string `json:"encoding,omitempty"`
	// Delimiter is the CSV field separator. Zero means detect.
	Delimiter rune `json:"delimiter,omitempty"`
	// StringValues keeps cell values as text instead of converting numbers.
	StringValues bool `json:"string_values,omitempty"`
}

var validate = validator.New()

// SheetIndex returns a pointer suitable for Options.WorksheetIndex.
func SheetIndex(i int) *int {
	return &i
}

// Validate checks the options for unknown import types and negative indexes.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// ShouldDropID returns whether primary keys are removed from records.
func (o Options) ShouldDropID() bool {
	return o.Type == TypeAppend
}

func (o Options) openOptions() parser.OpenOptions {
	return parser.OpenOptions{
		Encoding:  o.Encoding,
		Delimiter: o.Delimiter,
	}
}
