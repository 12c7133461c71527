package sheetio

import "errors"

var (
	ErrNoWorksheet  = errors.New("sheetio: workbook has no worksheet")
	ErrReadWorkbook = errors.New("sheetio: failed to read workbook")
	ErrSaveWorkbook = errors.New("sheetio: failed to save workbook")
	ErrReadFlat     = errors.New("sheetio: failed to decode flat file")
)
