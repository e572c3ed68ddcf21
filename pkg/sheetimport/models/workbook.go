package models

// WorkbookInfo describes the worksheets of a spreadsheet file.
type WorkbookInfo struct {
	// BookName is the file name (no path).
	BookName string `json:"book_name"`
	// Format is the detected file format (xlsx, xls, csv, ods).
	Format string `json:"format"`
	// Sheets lists the worksheets in workbook order.
	Sheets []SheetInfo `json:"sheets"`
}
