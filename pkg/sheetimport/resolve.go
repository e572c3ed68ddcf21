package sheetimport

import (
	"slices"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
)

// ResolveWorksheet decides which worksheet to load. The first rule that
// applies wins:
//
//  1. CSV files have a single implicit sheet; "" is returned.
//  2. A workbook with exactly one worksheet uses it.
//  3. opts.WorksheetIndex, if that index exists.
//  4. opts.Worksheet.
//  5. opts.DefaultWorksheet.
//
// The chosen name must exist in names, otherwise a *WorksheetError is returned.
func ResolveWorksheet(format parser.Format, names []string, opts Options) (string, error) {
	if format == parser.FormatCSV {
		return "", nil
	}

	var name string
	switch {
	case len(names) == 1:
		name = names[0]
	case opts.WorksheetIndex != nil && *opts.WorksheetIndex >= 0 && *opts.WorksheetIndex < len(names):
		name = names[*opts.WorksheetIndex]
	case opts.Worksheet != "":
		name = opts.Worksheet
	default:
		name = opts.DefaultWorksheet
	}

	if !slices.Contains(names, name) {
		return "", &WorksheetError{Requested: name, Available: names}
	}
	return name, nil
}
