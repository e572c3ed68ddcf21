package parser

import (
	"fmt"
	"os"

	"github.com/extrame/xls"
)

type xlsWorkbook struct {
	fd *os.File
	wb *xls.WorkBook
}

func openXLS(path, charset string) (Workbook, error) {
	if charset == "" {
		charset = "utf-8"
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(fd, charset)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return &xlsWorkbook{fd: fd, wb: wb}, nil
}

func (w *xlsWorkbook) Format() Format { return FormatXLS }

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if sheet := w.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (w *xlsWorkbook) Rows(name string) ([][]string, error) {
	for i := 0; i < w.wb.NumSheets(); i++ {
		sheet := w.wb.GetSheet(i)
		if sheet == nil || sheet.Name != name {
			continue
		}

		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheetRow(sheet, r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cols := make([]string, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cols[c] = row.Col(c)
			}
			rows = append(rows, cols)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("sheet %s does not exist", name)
}

// sheetRow returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences the missing entry and panics.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func (w *xlsWorkbook) Close() error {
	return w.fd.Close()
}
