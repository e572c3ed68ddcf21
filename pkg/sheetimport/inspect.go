package sheetimport

import (
	"fmt"
	"path/filepath"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"go.uber.org/zap"
)

// Inspect lists the worksheets of the file at path with their row counts
// and used ranges. CSV files report one unnamed sheet.
func (im *Importer) Inspect(path string, opts Options) (*models.WorkbookInfo, error) {
	format, err := detect(path)
	if err != nil {
		return nil, err
	}

	info := &models.WorkbookInfo{
		BookName: filepath.Base(path),
		Format:   string(format),
	}

	if format == parser.FormatXLSX {
		sheets, err := parser.InspectXLSX(path)
		if err != nil {
			return nil, NewImportError(path, "read", err)
		}
		info.Sheets = sheets
	} else {
		sheets, err := summarizeSheets(path, format, opts)
		if err != nil {
			return nil, err
		}
		info.Sheets = sheets
	}

	im.logger.Debug(fmt.Sprintf("%d worksheets found in file %s", len(info.Sheets), path),
		zap.String("format", info.Format),
	)
	return info, nil
}

func summarizeSheets(path string, format parser.Format, opts Options) ([]models.SheetInfo, error) {
	wb, err := parser.OpenFormat(path, format, opts.openOptions())
	if err != nil {
		return nil, NewImportError(path, "open", err)
	}
	defer wb.Close()

	names := wb.SheetNames()
	if format == parser.FormatCSV {
		names = []string{""}
	}

	sheets := make([]models.SheetInfo, 0, len(names))
	for idx, name := range names {
		rows, err := wb.Rows(name)
		if err != nil {
			return nil, NewImportError(path, "read", err)
		}
		sheets = append(sheets, parser.Summarize(name, idx, rows))
	}
	return sheets, nil
}
