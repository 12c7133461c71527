package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/cell"
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/rules"
)

// FlatToSheet converts a flat table back to the sheet layout.
//
// A leading code column and the date column after the language column are
// dropped. A table without language keys gets a default language column
// with a notice. Duplicate keys are renamed when the audit is enabled; the
// aggregate warning is returned in Result.Warnings.
func (t *Transcoder) FlatToSheet(ctx context.Context, flat Matrix, s rules.Settings, sink changelog.Sink) (Result, error) {
	width := flat.Width()
	if len(flat) == 0 || width == 0 {
		return Result{}, ErrEmptyMatrix
	}
	if sink == nil {
		sink = changelog.Discard
	}

	rows := mapRows(flat, func(_ int, row []string) []string {
		out := make([]string, width)
		copy(out, row)
		return out
	})
	cols := newColumns(width)

	hasCode := strings.EqualFold(strings.TrimSpace(rows[0][0]), CodeHeader)
	langCol := 0
	if hasCode {
		langCol = 1
	}

	if !hasLanguageKeys(rows, langCol) {
		rows = mapRows(rows, func(i int, row []string) []string {
			if i == 0 {
				return InsertColumn(row, langCol, KeyHeader)
			}
			return InsertColumn(row, langCol, t.defaultLanguage)
		})
		cols.insert(langCol)
		changelog.Notice(sink, fmt.Sprintf("No language keys found in the table, added a default %s key column", t.defaultLanguage))
	}
	rows[0][langCol] = KeyHeader

	if dateCol := langCol + 1; dateCol < len(rows[0]) && strings.EqualFold(strings.TrimSpace(rows[0][dateCol]), "date") {
		rows = mapRows(rows, func(_ int, row []string) []string {
			return RemoveColumn(row, dateCol)
		})
		cols.remove(dateCol)
	}

	// Languages are read before the audit renames duplicate keys, so a
	// renamed row keeps the formatting of the language it was written in.
	langs := make([]string, len(rows))
	for i := 1; i < len(rows); i++ {
		langs[i] = rowLanguage(rows[i][langCol])
	}

	var warnings []string
	if t.duplicateAudit {
		if w := auditKeys(rows, langCol, hasCode, cols, sink); w != "" {
			warnings = append(warnings, w)
			t.logger.WarnContext(ctx, w)
		}
	}

	for i, row := range rows {
		for j := range row {
			loc := changelog.At(sink, cols.ref(i, j))
			v := row[j]
			if langs[i] == "FR" {
				v = cell.FrenchNarrowSpaces(v, s.LanguageRules, loc)
			}
			v = cell.StripOuterQuotes(v, s.StripOuterQuotes, loc)
			if i > 0 && j != langCol && !(hasCode && j == 0) {
				v = t.normalizer.Normalize(ctx, v, langs[i], s, loc)
			}
			row[j] = v
		}
		if i > 0 && row[langCol] != "" {
			row[langCol] = locale.ToLocale(row[langCol])
		}
	}

	if hasCode {
		rows = mapRows(rows, func(_ int, row []string) []string {
			return RemoveColumn(row, 0)
		})
	}

	t.logger.DebugContext(ctx, "flat table converted to sheet",
		slog.Int("languages", len(rows)-1),
		slog.Int("variables", len(rows[0])-1),
	)

	return Result{Matrix: Transpose(rows), Warnings: warnings}, nil
}

func hasLanguageKeys(rows Matrix, langCol int) bool {
	for i := 1; i < len(rows); i++ {
		if langCol < len(rows[i]) && locale.IsLanguageCode(rows[i][langCol]) {
			return true
		}
	}
	return false
}

// columns maps working column indexes back to the source table so that
// audit locations point at cells the user can find. Injected columns map to -1.
type columns []int

func newColumns(width int) columns {
	c := make(columns, width)
	for i := range c {
		c[i] = i
	}
	return c
}

func (c *columns) insert(at int) {
	*c = slices.Insert(*c, min(at, len(*c)), -1)
}

func (c *columns) remove(at int) {
	*c = slices.Delete(*c, at, at+1)
}

func (c columns) ref(row, col int) string {
	if col >= len(c) {
		return ""
	}
	return cellRef(row, c[col])
}
