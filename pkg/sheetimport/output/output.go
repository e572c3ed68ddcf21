// Package output serializes import results.
package output

import (
	"encoding/json"

	toon "github.com/mateuszkardas/toon-go"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
)

// ToJSON serializes v as JSON. Records keep their column order.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// RecordsToTOON serializes records in TOON, a compact tabular notation for
// LLM prompts. TOON objects are unordered maps, so column order is not kept.
func RecordsToTOON(records []models.Record) (string, error) {
	rows := make([]map[string]interface{}, len(records))
	for i, r := range records {
		rows[i] = r.Map()
	}
	return toon.Marshal(map[string]interface{}{"records": rows}, nil)
}

// WorkbookToTOON serializes workbook information in TOON.
func WorkbookToTOON(info *models.WorkbookInfo) (string, error) {
	return toon.Marshal(info, nil)
}
