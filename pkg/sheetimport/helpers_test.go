package sheetimport

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

func writeXLSX(t *testing.T, sheets ...testSheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("Failed to rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("Failed to create sheet %q: %v", s.name, err)
		}
		for r, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("Failed to write row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write csv: %v", err)
	}
	return path
}

const odsContentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content
 xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:spreadsheet>`

const odsContentFooter = `</office:spreadsheet></office:body></office:document-content>`

// writeODS packs the given table elements into an OpenDocument spreadsheet.
func writeODS(t *testing.T, tables string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ods")
	fd, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create ods: %v", err)
	}
	defer fd.Close()

	zw := zip.NewWriter(fd)
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("Failed to write mimetype: %v", err)
	}
	mw.Write([]byte("application/vnd.oasis.opendocument.spreadsheet"))

	cw, err := zw.Create("content.xml")
	if err != nil {
		t.Fatalf("Failed to write content: %v", err)
	}
	cw.Write([]byte(odsContentHeader + tables + odsContentFooter))

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close ods: %v", err)
	}
	return path
}
