package parser

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OpenDocument namespaces used in content.xml
const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// maxODSRepeat bounds how often a single row or cell is expanded, and the
// length of a blank run that precedes data.
const maxODSRepeat = 1 << 16

// maxODSCells bounds the number of cells a workbook may expand to.
const maxODSCells = 1 << 22

type odsSheet struct {
	name string
	rows [][]string
}

type odsWorkbook struct {
	sheets []odsSheet
}

func openODS(path string) (Workbook, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var content *zip.File
	for _, f := range r.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s has no content.xml", ErrUnsupportedFormat, path)
	}

	rc, err := content.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	sheets, err := parseODSContent(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &odsWorkbook{sheets: sheets}, nil
}

func (w *odsWorkbook) Format() Format { return FormatODS }

func (w *odsWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

func (w *odsWorkbook) Rows(name string) ([][]string, error) {
	for _, s := range w.sheets {
		if s.name == name {
			return s.rows, nil
		}
	}
	return nil, fmt.Errorf("sheet %s does not exist", name)
}

func (w *odsWorkbook) Close() error { return nil }

// odsState tracks the position of the streaming decoder inside content.xml.
type odsState struct {
	sheets []odsSheet

	row         []string
	rowRepeat   int
	pendingRows int

	inCell          bool
	cellRepeat      int
	cellValue       string
	hasValue        bool
	text            strings.Builder
	paragraphs      int
	pendingCells    int
	annotationDepth int

	cells int
	err   error
}

// parseODSContent decodes the tables of an OpenDocument content.xml stream.
// Repeated rows and cells are expanded; trailing empty ones are dropped.
func parseODSContent(r io.Reader) ([]odsSheet, error) {
	dec := xml.NewDecoder(r)
	st := &odsState{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			st.start(t)
		case xml.EndElement:
			st.end(t)
			if st.err != nil {
				return nil, st.err
			}
		case xml.CharData:
			if st.inCell && st.annotationDepth == 0 {
				st.text.Write(t)
			}
		}
	}

	return st.sheets, nil
}

func (st *odsState) start(t xml.StartElement) {
	if t.Name.Space == nsOffice && t.Name.Local == "annotation" {
		st.annotationDepth++
		return
	}
	if st.annotationDepth > 0 {
		return
	}

	switch t.Name.Space {
	case nsTable:
		switch t.Name.Local {
		case "table":
			st.sheets = append(st.sheets, odsSheet{name: attr(t, nsTable, "name")})
			st.pendingRows = 0
		case "table-row":
			st.row = nil
			st.pendingCells = 0
			st.rowRepeat = repeatCount(attr(t, nsTable, "number-rows-repeated"))
		case "table-cell", "covered-table-cell":
			st.inCell = true
			st.text.Reset()
			st.paragraphs = 0
			st.cellRepeat = repeatCount(attr(t, nsTable, "number-columns-repeated"))
			st.cellValue, st.hasValue = typedValue(t)
		}
	case nsText:
		if !st.inCell {
			return
		}
		switch t.Name.Local {
		case "p":
			if st.paragraphs > 0 {
				st.text.WriteByte('\n')
			}
			st.paragraphs++
		case "s":
			n := repeatCount(attr(t, nsText, "c"))
			st.text.WriteString(strings.Repeat(" ", n))
		case "tab":
			st.text.WriteByte('\t')
		case "line-break":
			st.text.WriteByte('\n')
		}
	}
}

func (st *odsState) end(t xml.EndElement) {
	if t.Name.Space == nsOffice && t.Name.Local == "annotation" {
		st.annotationDepth--
		return
	}
	if st.annotationDepth > 0 || t.Name.Space != nsTable {
		return
	}

	switch t.Name.Local {
	case "table-cell", "covered-table-cell":
		st.inCell = false
		value := st.text.String()
		if st.hasValue && st.cellValue != "" {
			value = st.cellValue
		}
		if value == "" {
			st.pendingCells = min(st.pendingCells+st.cellRepeat, maxODSRepeat+1)
			return
		}
		if st.pendingCells > maxODSRepeat {
			st.fail("more than %d blank cells before a value", maxODSRepeat)
			return
		}
		n := min(st.cellRepeat, maxODSRepeat)
		if !st.reserve(st.pendingCells + n) {
			return
		}
		for ; st.pendingCells > 0; st.pendingCells-- {
			st.row = append(st.row, "")
		}
		for i := 0; i < n; i++ {
			st.row = append(st.row, value)
		}
	case "table-row":
		if len(st.sheets) == 0 {
			return
		}
		sheet := &st.sheets[len(st.sheets)-1]
		if len(st.row) == 0 {
			st.pendingRows = min(st.pendingRows+st.rowRepeat, maxODSRepeat+1)
			return
		}
		if st.pendingRows > maxODSRepeat {
			st.fail("more than %d blank rows before data in table %q", maxODSRepeat, sheet.name)
			return
		}
		n := min(st.rowRepeat, maxODSRepeat)
		if !st.reserve(st.pendingRows + (n-1)*len(st.row)) {
			return
		}
		for ; st.pendingRows > 0; st.pendingRows-- {
			sheet.rows = append(sheet.rows, nil)
		}
		for i := 0; i < n; i++ {
			row := make([]string, len(st.row))
			copy(row, st.row)
			sheet.rows = append(sheet.rows, row)
		}
	}
}

// reserve accounts for n more cells and fails once the workbook would
// exceed maxODSCells.
func (st *odsState) reserve(n int) bool {
	st.cells += n
	if st.cells > maxODSCells {
		st.fail("table expands to more than %d cells", maxODSCells)
		return false
	}
	return true
}

func (st *odsState) fail(format string, args ...interface{}) {
	st.err = fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// typedValue returns the office:*value attribute matching the cell's value type.
func typedValue(t xml.StartElement) (string, bool) {
	switch attr(t, nsOffice, "value-type") {
	case "float", "percentage", "currency":
		return attr(t, nsOffice, "value"), true
	case "date":
		return attr(t, nsOffice, "date-value"), true
	case "time":
		return attr(t, nsOffice, "time-value"), true
	case "boolean":
		return attr(t, nsOffice, "boolean-value"), true
	}
	return "", false
}

func attr(t xml.StartElement, space, local string) string {
	for _, a := range t.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// repeatCount parses a number-*-repeated attribute. Values beyond the row
// limit of any spreadsheet application are clamped so sums cannot overflow.
func repeatCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return min(n, 1<<30)
}
