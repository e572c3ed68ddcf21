package sheetimport

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"github.com/xuri/excelize/v2"
)

// Fields with special handling during import.
const (
	// FieldModified is always dropped; the import time becomes the new modification time.
	FieldModified = "modified"
	// FieldID is the primary key.
	FieldID = "id"
)

// MapRows turns a worksheet into records. The first row holds the field
// names, every following row becomes one record in the same order.
// Short rows are padded with nil. Blank rows are skipped rather than
// emitted as records whose fields are all nil, so a spacer row between
// data blocks does not become an empty entity.
func MapRows(rows [][]string, opts Options) ([]models.Record, error) {
	records := []models.Record{}
	if len(rows) == 0 {
		return records, nil
	}

	header, err := readHeader(rows[0])
	if err != nil {
		return nil, err
	}

	for idx, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		record, err := mapRow(header, row, idx+2, opts)
		if err != nil {
			return nil, err
		}
		applyFieldRules(&record, opts)
		records = append(records, record)
	}

	return records, nil
}

// readHeader returns the trimmed field names, without trailing blanks.
func readHeader(row []string) ([]string, error) {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}

	header := make([]string, end)
	seen := make(map[string]bool, end)
	for i := 0; i < end; i++ {
		name := strings.TrimSpace(row[i])
		if seen[name] {
			return nil, &RowError{Row: 1, Reason: fmt.Sprintf("duplicate column %q", name)}
		}
		seen[name] = true
		header[i] = name
	}
	return header, nil
}

func mapRow(header, row []string, rowNum int, opts Options) (models.Record, error) {
	for c := len(header); c < len(row); c++ {
		if strings.TrimSpace(row[c]) != "" {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowNum)
			return models.Record{}, &RowError{Row: rowNum, Reason: fmt.Sprintf("cell %s has no column header", cell)}
		}
	}

	record := models.NewRecord(len(header))
	for c, field := range header {
		var value interface{}
		if c < len(row) {
			value = cellValue(row[c], opts)
		}
		record.Set(field, value)
	}
	return record, nil
}

func cellValue(s string, opts Options) interface{} {
	if opts.StringValues {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return s
	}
	return parser.ParseValue(s)
}

// applyFieldRules drops the modification timestamp, drops the primary key
// in append mode and normalizes a remaining primary key to an integer.
func applyFieldRules(record *models.Record, opts Options) {
	record.Delete(FieldModified)

	if opts.ShouldDropID() {
		record.Delete(FieldID)
	}

	if v, ok := record.Get(FieldID); ok && v != nil {
		record.Set(FieldID, CoerceInt(v))
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CoerceInt converts a cell value to an integer. Floats are truncated,
// numeric text is parsed, text with a numeric prefix ("12abc") yields the
// prefix and anything else yields 0.
func CoerceInt(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return truncate(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		return parseIntPrefix(n)
	default:
		return parseIntPrefix(fmt.Sprint(n))
	}
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

func parseIntPrefix(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncate(f)
	}

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	i, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return i
}
