// Package sheetio reads and writes the two file layouts handled by
// transcode: XLSX workbooks and tab-separated flat text files.
//
// Only cell text is modeled. Styles, formulas and every worksheet but the
// first are ignored on read; written workbooks hold a single sheet of
// string cells.
package sheetio
