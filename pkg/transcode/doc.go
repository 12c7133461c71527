// Package transcode converts localization data between the sheet layout
// (one variable per row, one language per column) and the flat layout (one
// language per row, tab-separated).
//
// SheetToFlat transposes the sheet, cleans and normalizes every cell under
// its row language, and adds the generated "code" and "Date" columns.
// FlatToSheet consumes those columns again, audits language keys for
// duplicates and transposes back. Running both directions over normalized
// content reproduces the original sheet.
//
// Every change is reported to a changelog.Sink with a spreadsheet cell
// reference of the source layout as its location.
package transcode
