package sheetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

// SheetName is the name of the worksheet written by WriteSheet.
const SheetName = "Sheet1"

// ReadSheet reads the first worksheet of an XLSX document into a matrix.
// Sparse rows and cells are filled with empty strings; each row ends at its
// last stored cell.
func ReadSheet(r io.ReaderAt, size int64) (transcode.Matrix, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, errors.Join(ErrReadWorkbook, err)
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}

	var m transcode.Matrix
	for _, row := range sheets[0].Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		for len(m) <= rowIdx {
			m = append(m, nil)
		}

		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			for len(m[rowIdx]) <= colIdx {
				m[rowIdx] = append(m[rowIdx], "")
			}
			m[rowIdx][colIdx] = cell.GetString()
		}
	}
	return m, nil
}

// ReadSheetFile reads the first worksheet of the XLSX file at path.
func ReadSheetFile(path string) (transcode.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sheetio: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("sheetio: stat %s: %w", path, err)
	}
	return ReadSheet(f, info.Size())
}

// WriteSheet writes m as a single-sheet XLSX document of string cells.
func WriteSheet(w io.Writer, m transcode.Matrix) error {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(SheetName)

	for _, values := range m {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	if err := wb.Save(w); err != nil {
		return errors.Join(ErrSaveWorkbook, err)
	}
	return nil
}
