package parser

import (
	"github.com/xuri/excelize/v2"
)

type xlsxWorkbook struct {
	f *excelize.File
}

func openXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) Format() Format { return FormatXLSX }

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows reads unformatted cell values so numbers keep their stored precision.
func (w *xlsxWorkbook) Rows(sheet string) ([][]string, error) {
	return w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}
