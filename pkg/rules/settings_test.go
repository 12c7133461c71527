package rules_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/rules"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	s := rules.Default()
	require.Equal(t, "11111111111", s.Fingerprint())
	require.True(t, s.Numbers())
	require.True(t, s.Percent())
	require.True(t, s.Currency())
}

func TestSettings_MasterSwitch(t *testing.T) {
	t.Parallel()

	s, err := rules.Default().With(rules.NumericFormatting, false)
	require.NoError(t, err)
	assert.False(t, s.Numbers())
	assert.False(t, s.Percent())
	assert.False(t, s.Currency())
	assert.True(t, s.UnitSpacing)
	assert.True(t, s.NumberSeparators)
}

func TestSettings_With(t *testing.T) {
	t.Parallel()

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()
		orig := rules.Default()
		changed, err := orig.With(" Unit_Spacing ", false)
		require.NoError(t, err)
		assert.True(t, orig.UnitSpacing)
		assert.False(t, changed.UnitSpacing)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := rules.Default().With("kerning", false)
		require.ErrorIs(t, err, rules.ErrUnknownSetting)
	})

	t.Run("without skips blanks", func(t *testing.T) {
		t.Parallel()
		s, err := rules.Default().Without("", rules.GlobalRules, rules.LanguageRules)
		require.NoError(t, err)
		assert.False(t, s.GlobalRules)
		assert.False(t, s.LanguageRules)
		assert.True(t, s.StripOuterQuotes)
	})
}

func TestSettings_FingerprintDiffers(t *testing.T) {
	t.Parallel()

	a := rules.Default()
	b, err := a.With(rules.CurrencyFormatting, false)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, b.Fingerprint(), len(rules.Names()))
}

func TestParseProfile(t *testing.T) {
	t.Parallel()

	t.Run("partial overrides", func(t *testing.T) {
		t.Parallel()
		p, err := rules.ParseProfile([]byte("sheet_to_flat:\n  currency_formatting: false\nflat_to_sheet:\n  language_rules: false\n"))
		require.NoError(t, err)
		assert.False(t, p.SheetToFlat.CurrencyFormatting)
		assert.True(t, p.SheetToFlat.LanguageRules)
		assert.False(t, p.FlatToSheet.LanguageRules)
		assert.True(t, p.FlatToSheet.CurrencyFormatting)
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		t.Parallel()
		p, err := rules.ParseProfile(nil)
		require.NoError(t, err)
		assert.Equal(t, rules.DefaultProfile(), p)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := rules.ParseProfile([]byte("sheet_to_flat:\n  kerning: true\n"))
		require.ErrorIs(t, err, rules.ErrInvalidProfile)
		require.ErrorIs(t, err, rules.ErrUnknownSetting)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := rules.ParseProfile([]byte("sheet_to_flat: [\n"))
		require.ErrorIs(t, err, rules.ErrInvalidProfile)
	})
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"profile.yaml": {Data: []byte("flat_to_sheet:\n  strip_outer_quotes: false\n")},
	}

	p, err := rules.LoadProfile(fsys, "profile.yaml")
	require.NoError(t, err)
	assert.False(t, p.FlatToSheet.StripOuterQuotes)
	assert.True(t, p.SheetToFlat.StripOuterQuotes)

	_, err = rules.LoadProfile(fsys, "missing.yaml")
	require.Error(t, err)
}
