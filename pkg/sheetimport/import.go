package sheetimport

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"go.uber.org/zap"
)

// Importer reads spreadsheet files into records.
type Importer struct {
	logger *zap.Logger
}

// New returns an Importer that logs to logger. A nil logger discards output.
func New(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{logger: logger}
}

// PrepareEntityData reads the file at path (xls, xlsx, csv or ods) and
// converts one worksheet into records, one per data row, keyed by the
// names in the first row. See ResolveWorksheet for how the worksheet is
// chosen and MapRows for the field rules.
func PrepareEntityData(path string, opts Options) ([]models.Record, error) {
	return New(nil).PrepareEntityData(path, opts)
}

// PrepareEntityData is the logging variant of the package-level function.
func (im *Importer) PrepareEntityData(path string, opts Options) ([]models.Record, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	wb, err := im.open(path, opts)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := ResolveWorksheet(wb.Format(), wb.SheetNames(), opts)
	if err != nil {
		return nil, NewImportError(path, "resolve", err)
	}

	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, NewImportError(path, "read", err)
	}

	records, err := MapRows(rows, opts)
	if err != nil {
		return nil, NewImportError(path, "map", err)
	}

	im.logger.Debug(fmt.Sprintf("%d records were extracted from file %s", len(records), path),
		zap.String("worksheet", sheet),
		zap.String("format", string(wb.Format())),
	)

	return records, nil
}

func (im *Importer) open(path string, opts Options) (parser.Workbook, error) {
	format, err := detect(path)
	if err != nil {
		return nil, err
	}

	wb, err := parser.OpenFormat(path, format, opts.openOptions())
	if err != nil {
		return nil, NewImportError(path, "open", err)
	}
	return wb, nil
}

func detect(path string) (parser.Format, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewImportError(path, "open", fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path)))
		}
		return "", NewImportError(path, "open", err)
	}

	format, err := parser.Detect(path)
	if err != nil {
		return "", NewImportError(path, "open", err)
	}
	return format, nil
}
