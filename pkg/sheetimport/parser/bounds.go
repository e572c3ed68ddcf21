package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/xuri/excelize/v2"
)

// Summarize describes a worksheet from its rows.
func Summarize(name string, index int, rows [][]string) models.SheetInfo {
	info := models.SheetInfo{Name: name, Index: index}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return info
	}
	info.Rows = maxRow + 1
	info.Range = rangeRef(minRow+1, maxRow+1, minCol+1, maxCol+1)
	return info
}

// findDataBounds finds the zero-based bounding box of non-empty cells.
// All bounds are -1 when the sheet is blank.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// rangeRef converts one-based bounds to Excel range notation.
func rangeRef(r1, r2, c1, c2 int) string {
	startCell, _ := excelize.CoordinatesToCellName(c1, r1)
	endCell, _ := excelize.CoordinatesToCellName(c2, r2)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
