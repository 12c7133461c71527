// Package cell cleans individual spreadsheet cells before the typographic
// rules run: outer quote stripping, whitespace collapsing, French narrow
// space normalization and non-breaking hyphen replacement.
//
// Every function takes an enabled flag and a changelog.Sink, returns the
// input unchanged when disabled, and records an event only when the text
// actually changed.
package cell
