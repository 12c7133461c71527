package transcode_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/cell"
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/rules"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
}

func newTranscoder(opts ...transcode.Option) *transcode.Transcoder {
	return transcode.New(append([]transcode.Option{transcode.WithClock(fixedClock)}, opts...)...)
}

func TestSheetToFlat(t *testing.T) {
	t.Parallel()

	sheet := transcode.Matrix{
		{"Key", "en_EN", "fr_FR"},
		{"weight", "10 kg", `"le chat"`},
		{"title", "Hello\nworld", "«\u202fOui\u202f»"},
	}

	var log changelog.Log
	res, err := newTranscoder().SheetToFlat(context.Background(), sheet, rules.Default(), "A12", &log)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, transcode.Matrix{
		{"code", "Key", "Date", "weight", "title"},
		{"A12", "EN", "26-10-19", "10\u00a0kg", "Hello world"},
		{"A12", "FR", "26-10-19", "le\u00a0chat", "Oui"},
	}, res.Matrix)

	byRule := make(map[string]changelog.Event)
	for _, e := range log.Events() {
		if _, ok := byRule[e.Rule]; !ok {
			byRule[e.Rule] = e
		}
	}
	assert.Equal(t, "B2", byRule["NBSP before units"].Location)
	assert.Equal(t, "B3", byRule[cell.RuleLineBreaks].Location)
	assert.Equal(t, "C2", byRule[cell.RuleOuterQuotes].Location)
	assert.Equal(t, "C3", byRule[cell.RuleNarrowSpaces].Location)
	assert.Empty(t, log.Notices())
	assert.Equal(t, "Key", sheet[0][0], "input must not change")
}

func TestSheetToFlat_DefaultHeader(t *testing.T) {
	t.Parallel()

	sheet := transcode.Matrix{
		{"greeting", "Hello"},
		{"bye", "Bye"},
	}

	var log changelog.Log
	res, err := newTranscoder().SheetToFlat(context.Background(), sheet, rules.Default(), "X", &log)
	require.NoError(t, err)

	assert.Equal(t, transcode.Matrix{
		{"code", "Key", "Date", "greeting", "bye"},
		{"X", "EN", "26-10-19", "Hello", "Bye"},
	}, res.Matrix)
	assert.Len(t, log.Notices(), 1)
}

func TestSheetToFlat_DefaultLanguageOption(t *testing.T) {
	t.Parallel()

	res, err := newTranscoder(transcode.WithDefaultLanguage("de")).
		SheetToFlat(context.Background(), transcode.Matrix{{"price", "1234"}}, rules.Default(), "X", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "DE", "26-10-19", "1.234"}, res.Matrix[1])
}

func TestWithDefaultLanguage_LocaleStyle(t *testing.T) {
	t.Parallel()

	tc := newTranscoder(transcode.WithDefaultLanguage("fr_FR"))
	assert.Equal(t, "FR", tc.DefaultLanguage())

	res, err := tc.FlatToSheet(context.Background(),
		transcode.Matrix{{"code", "v1"}, {"X", "le chat"}}, rules.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, transcode.Matrix{{"Key", "fr_FR"}, {"v1", "le\u00a0chat"}}, res.Matrix)
}

func TestSheetToFlat_UnsetIdentifier(t *testing.T) {
	t.Parallel()

	var log changelog.Log
	res, err := newTranscoder().SheetToFlat(context.Background(),
		transcode.Matrix{{"Key", "en_EN"}, {"a", "b"}}, rules.Default(), "  ", &log)
	require.NoError(t, err)

	assert.Equal(t, transcode.UnsetIdentifier, res.Matrix[1][0])
	require.Len(t, log.Notices(), 1)
	assert.Contains(t, log.Notices()[0].After, transcode.UnsetIdentifier)
}

func TestSheetToFlat_NonBreakingHyphen(t *testing.T) {
	t.Parallel()

	sheet := transcode.Matrix{{"Key", "en_EN"}, {"mail", "e\u2011mail"}}

	res, err := newTranscoder(transcode.WithCharset(charset.MacRoman)).
		SheetToFlat(context.Background(), sheet, rules.Default(), "X", nil)
	require.NoError(t, err)
	assert.Equal(t, "e-mail", res.Matrix[1][3])

	res, err = newTranscoder().SheetToFlat(context.Background(), sheet, rules.Default(), "X", nil)
	require.NoError(t, err)
	assert.Equal(t, "e\u2011mail", res.Matrix[1][3])
}

func TestSheetToFlat_Empty(t *testing.T) {
	t.Parallel()

	_, err := newTranscoder().SheetToFlat(context.Background(), nil, rules.Default(), "X", nil)
	require.ErrorIs(t, err, transcode.ErrEmptyMatrix)
	_, err = newTranscoder().FlatToSheet(context.Background(), transcode.Matrix{{}}, rules.Default(), nil)
	require.ErrorIs(t, err, transcode.ErrEmptyMatrix)
}

func TestFlatToSheet(t *testing.T) {
	t.Parallel()

	flat := transcode.Matrix{
		{"code", "Lang", "Date", "weight", "quote"},
		{"A12", "EN", "26-10-19", "10 kg", `"Hi"`},
		{"A12", "FR", "26-10-19", "5 €", "«\u00a0Oui\u00a0»"},
	}

	var log changelog.Log
	res, err := newTranscoder().FlatToSheet(context.Background(), flat, rules.Default(), &log)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, transcode.Matrix{
		{"Key", "en_EN", "fr_FR"},
		{"weight", "10\u00a0kg", "5\u00a0€"},
		{"quote", "Hi", "Oui"},
	}, res.Matrix)

	quotes := 0
	for _, e := range log.Events() {
		if e.Rule == cell.RuleOuterQuotes {
			quotes++
			assert.Contains(t, []string{"E2", "E3"}, e.Location)
		}
	}
	assert.Equal(t, 2, quotes)
}

func TestFlatToSheet_InjectsLanguageColumn(t *testing.T) {
	t.Parallel()

	var log changelog.Log
	res, err := newTranscoder().FlatToSheet(context.Background(),
		transcode.Matrix{{"code", "v1"}, {"X", "a"}}, rules.Default(), &log)
	require.NoError(t, err)

	assert.Equal(t, transcode.Matrix{{"Key", "en_EN"}, {"v1", "a"}}, res.Matrix)
	assert.Len(t, log.Notices(), 1)
}

func TestFlatToSheet_DuplicateKeys(t *testing.T) {
	t.Parallel()

	flat := transcode.Matrix{
		{"code", "Key", "Date", "v1"},
		{"X", "EN", "d", "a"},
		{"X", "EN", "d", "b"},
		{"X", "en_EN", "d", "c"},
		{"X", "FR", "d", "d"},
	}

	var log changelog.Log
	res, err := newTranscoder().FlatToSheet(context.Background(), flat, rules.Default(), &log)
	require.NoError(t, err)

	assert.Equal(t, transcode.Matrix{
		{"Key", "en_EN", "key-old", "key-old-2", "fr_FR"},
		{"v1", "a", "b", "c", "d"},
	}, res.Matrix)

	errs := log.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, changelog.Event{Rule: changelog.RuleError, Before: "EN", After: "key-old", Location: "B3"}, errs[0])
	assert.Equal(t, changelog.Event{Rule: changelog.RuleError, Before: "en_EN", After: "key-old-2", Location: "B4"}, errs[1])
	assert.Len(t, res.Warnings, 1)
}

func TestFlatToSheet_ColumnCollision(t *testing.T) {
	t.Parallel()

	flat := transcode.Matrix{
		{"Key", "v1", "v2"},
		{"EN", "Hello", "FR"},
		{"FR", "Bonjour", "x"},
	}

	var log changelog.Log
	res, err := newTranscoder().FlatToSheet(context.Background(), flat, rules.Default(), &log)
	require.NoError(t, err)

	assert.Equal(t, transcode.Matrix{
		{"Key", "en_EN", "fr_FR"},
		{"v1", "Hello", "Bonjour"},
		{"key-old", "FR", "x"},
	}, res.Matrix)
	require.Len(t, log.Errors(), 1)
	assert.Equal(t, "v2", log.Errors()[0].Before)
	assert.Equal(t, "C2", log.Errors()[0].Location)
	assert.Len(t, res.Warnings, 1)

	t.Run("audit disabled", func(t *testing.T) {
		t.Parallel()
		var log changelog.Log
		res, err := newTranscoder(transcode.WithDuplicateAudit(false)).
			FlatToSheet(context.Background(), flat, rules.Default(), &log)
		require.NoError(t, err)
		assert.Equal(t, "v2", res.Matrix[2][0])
		assert.Empty(t, log.Errors())
		assert.Empty(t, res.Warnings)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sheet := transcode.Matrix{
		{"Key", "en_EN", "fr_FR", "de_DE"},
		{"weight", "10\u00a0kg", "10\u00a0kg", "10\u00a0kg"},
		{"price", "$1,234.5", "1\u00a0234,5\u00a0€", "1.234,5\u00a0€"},
		{"ratio", "1,234.567", "1\u00a0234,567", "1.234,567"},
		{"greeting", "Hello world", "Bonjour\u00a0!", "Guten Tag"},
		{"article", "the\u00a0cat", "le\u00a0chat", "der\u00a0Hund"},
	}

	tc := newTranscoder()
	ctx := context.Background()

	flat, err := tc.SheetToFlat(ctx, sheet, rules.Default(), "A12", nil)
	require.NoError(t, err)

	text := transcode.FormatFlat(flat.Matrix)
	back, err := tc.FlatToSheet(ctx, transcode.ParseFlat(text), rules.Default(), nil)
	require.NoError(t, err)

	assert.Equal(t, sheet, back.Matrix)
}
