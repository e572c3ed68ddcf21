package parser

import (
	"strings"

	"github.com/thedatashed/xlsxreader"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
)

// InspectXLSX summarizes every worksheet of an xlsx file by streaming its
// rows, without loading whole sheets into memory.
func InspectXLSX(path string) ([]models.SheetInfo, error) {
	xl, err := xlsxreader.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	infos := make([]models.SheetInfo, 0, len(xl.Sheets))
	for idx, name := range xl.Sheets {
		info, err := inspectStream(xl.ReadRows(name))
		if err != nil {
			return nil, err
		}
		info.Name = name
		info.Index = idx
		infos = append(infos, info)
	}
	return infos, nil
}

func inspectStream(rows chan xlsxreader.Row) (models.SheetInfo, error) {
	var info models.SheetInfo
	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1

	for row := range rows {
		if row.Error != nil {
			// drain so the reader goroutine can exit
			for range rows {
			}
			return info, row.Error
		}
		for _, cell := range row.Cells {
			if strings.TrimSpace(cell.Value) == "" {
				continue
			}
			col, err := excelize.ColumnNameToNumber(cell.Column)
			if err != nil {
				continue
			}
			if minRow < 0 || cell.Row < minRow {
				minRow = cell.Row
			}
			if cell.Row > maxRow {
				maxRow = cell.Row
			}
			if minCol < 0 || col < minCol {
				minCol = col
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	if minRow < 0 {
		return info, nil
	}
	info.Rows = maxRow
	info.Range = rangeRef(minRow, maxRow, minCol, maxCol)
	return info, nil
}
