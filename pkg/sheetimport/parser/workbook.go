package parser

import (
	"fmt"
)

// Workbook is a spreadsheet file opened for reading.
type Workbook interface {
	// Format returns the file format.
	Format() Format
	// SheetNames returns the worksheet names in workbook order.
	// It is empty for CSV files.
	SheetNames() []string
	// Rows returns all rows of the named worksheet as raw cell text.
	// The name is ignored for CSV files.
	Rows(sheet string) ([][]string, error)
	// Close releases the underlying file.
	Close() error
}

// OpenOptions configures how files are decoded.
type OpenOptions struct {
	// Encoding is the character set for CSV and XLS files (default utf-8).
	Encoding string
	// Delimiter is the CSV field separator. Zero means detect from the header line.
	Delimiter rune
}

// Open detects the format of path and opens it.
func Open(path string, opts OpenOptions) (Workbook, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	return OpenFormat(path, format, opts)
}

// OpenFormat opens path as the given format without sniffing.
func OpenFormat(path string, format Format, opts OpenOptions) (Workbook, error) {
	switch format {
	case FormatXLSX:
		return openXLSX(path)
	case FormatXLS:
		return openXLS(path, opts.Encoding)
	case FormatCSV:
		return openCSV(path, opts)
	case FormatODS:
		return openODS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
