// Package changelog records every change the normalizer makes to cell text.
//
// Rules report through a Sink. A Log is the usual sink: an append-only list
// of Events that is reset at the start of each conversion. Events carry the
// rule name, the matched text before and after the change, and an optional
// location such as a spreadsheet cell reference.
//
// Two rule names are reserved: RuleNotice for informational entries (for
// example a synthesized language header) and RuleError for problems found in
// the data (for example duplicate language keys).
//
//	var log changelog.Log
//	sink := changelog.At(&log, "B3")
//	changelog.Change(sink, "Percent formatting", "50 %", "50%")
//
// Report renders a Log as Markdown or as sanitized HTML.
package changelog
