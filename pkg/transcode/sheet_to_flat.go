package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/cell"
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/rules"
)

// SheetToFlat converts a sheet to the flat layout.
//
// identifier fills the code column. When it is empty the column holds
// UnsetIdentifier and a notice is recorded. A sheet without any language
// code gets a default header row, also with a notice.
func (t *Transcoder) SheetToFlat(ctx context.Context, sheet Matrix, s rules.Settings, identifier string, sink changelog.Sink) (Result, error) {
	if len(sheet) == 0 || sheet.Width() == 0 {
		return Result{}, ErrEmptyMatrix
	}
	if sink == nil {
		sink = changelog.Discard
	}

	// Source row of sheet[0]; -1 once a header row has been synthesized.
	offset := 0
	if !hasLanguageHeader(sheet) {
		sheet = slices.Insert(slices.Clone(sheet), 0, t.defaultHeader(sheet.Width()))
		offset = -1
		changelog.Notice(sink, fmt.Sprintf("No language codes found in the sheet, added a default %s header row", t.defaultLanguage))
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		identifier = UnsetIdentifier
		changelog.Notice(sink, fmt.Sprintf("No identifier found in the file name, code column set to %q", UnsetIdentifier))
	}

	date := t.now().Format(DateLayout)
	replaceHyphens := s.NonBreakingHyphen && !charset.CanEncode('\u2011', t.charset)

	flat := mapRows(Transpose(sheet), func(i int, row []string) []string {
		row = slices.Clone(row)

		lang := ""
		if i > 0 && strings.TrimSpace(row[0]) != "" {
			lang = rowLanguage(row[0])
			row[0] = lang
		}

		for j := range row {
			// Row i of the flat table is column i of the sheet.
			loc := changelog.At(sink, cellRef(j+offset, i))
			v := row[j]
			if lang == "FR" {
				v = cell.FrenchNarrowSpaces(v, s.LanguageRules, loc)
			}
			v = cell.CollapseWhitespace(v, s.CollapseWhitespace, loc)
			v = cell.StripOuterQuotes(v, s.StripOuterQuotes, loc)
			v = cell.NormalizeNonBreakingHyphen(v, replaceHyphens, loc)
			if lang != "" && j > 0 {
				v = t.normalizer.Normalize(ctx, v, lang, s, loc)
			}
			row[j] = v
		}

		if i == 0 {
			row = InsertColumn(row, 1, DateHeader)
			return InsertColumn(row, 0, CodeHeader)
		}
		row = InsertColumn(row, 1, date)
		return InsertColumn(row, 0, identifier)
	})

	t.logger.DebugContext(ctx, "sheet converted to flat table",
		slog.Int("languages", len(flat)-1),
		slog.Int("variables", len(sheet)-1),
	)

	return Result{Matrix: flat}, nil
}

// hasLanguageHeader reports whether any cell past the first column holds a
// language code.
func hasLanguageHeader(sheet Matrix) bool {
	for _, row := range sheet {
		for j := 1; j < len(row); j++ {
			if locale.IsLanguageCode(row[j]) {
				return true
			}
		}
	}
	return false
}

func (t *Transcoder) defaultHeader(width int) []string {
	header := make([]string, width)
	header[0] = KeyHeader
	for j := 1; j < width; j++ {
		header[j] = locale.ToLocale(t.defaultLanguage)
	}
	return header
}
