package parser

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedFormat indicates the file is not a spreadsheet format we can read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrMalformed indicates a file whose content cannot be read as a table.
var ErrMalformed = errors.New("malformed spreadsheet")

// Format identifies a spreadsheet file format.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatXLS is a legacy BIFF8 workbook.
	FormatXLS Format = "xls"
	// FormatCSV is delimiter separated text. It has exactly one implicit worksheet.
	FormatCSV Format = "csv"
	// FormatODS is an OpenDocument spreadsheet.
	FormatODS Format = "ods"
)

// Content types reported by mimetype for the formats we read.
const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
	mimeODS  = "application/vnd.oasis.opendocument.spreadsheet"
	mimeCSV  = "text/csv"
	mimeTSV  = "text/tab-separated-values"
)

var mimeFormats = map[string]Format{
	mimeXLSX: FormatXLSX,
	mimeXLS:  FormatXLS,
	mimeODS:  FormatODS,
	mimeCSV:  FormatCSV,
	mimeTSV:  FormatCSV,
}

// extFormats maps file extensions to formats, used when content sniffing
// only recognizes the container (zip, OLE, plain text).
var extFormats = map[string]Format{
	".xlsx": FormatXLSX,
	".xlsm": FormatXLSX,
	".xls":  FormatXLS,
	".ods":  FormatODS,
	".csv":  FormatCSV,
	".tsv":  FormatCSV,
	".txt":  FormatCSV,
}

// containerFormats lists the formats an extension may claim for a given
// generic content type.
var containerFormats = map[string][]Format{
	"application/zip":           {FormatXLSX, FormatODS},
	"application/x-ole-storage": {FormatXLS},
	"text/plain":                {FormatCSV},
}

// Detect identifies the format of the file at path from its content,
// falling back to the extension when only the container type is known.
func Detect(path string) (Format, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}

	if f, ok := mimeFormats[baseType(mtype)]; ok {
		return f, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	byExt, ok := extFormats[ext]
	if ok {
		for m := mtype; m != nil; m = m.Parent() {
			for _, allowed := range containerFormats[baseType(m)] {
				if allowed == byExt {
					return byExt, nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, filepath.Base(path), mtype.String())
}

// baseType strips parameters such as "; charset=utf-8" from a detected type.
func baseType(m *mimetype.MIME) string {
	t, _, err := mime.ParseMediaType(m.String())
	if err != nil {
		return m.String()
	}
	return t
}
