package models

// SheetInfo summarizes a single worksheet.
type SheetInfo struct {
	// Name is the worksheet name. Empty for CSV files.
	Name string `json:"name"`
	// Index is the zero-based position in the workbook.
	Index int `json:"index"`
	// Rows is the one-based number of the last non-empty row, header included.
	Rows int `json:"rows"`
	// Range is the used range in A1 notation (e.g. "A1:D10"), empty if the sheet is blank.
	Range string `json:"range,omitempty"`
}
