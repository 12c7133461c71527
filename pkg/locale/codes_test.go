package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/locale"
)

func TestToShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FR", locale.ToShort("fr_FR"))
	assert.Equal(t, "US", locale.ToShort("en_US"))
	assert.Equal(t, "DE", locale.ToShort("DE_de"))
	assert.Equal(t, "EN", locale.ToShort(" EN "))
	assert.Equal(t, "Key", locale.ToShort("Key"))
	assert.Equal(t, "key-old", locale.ToShort("key-old"))
}

func TestToLocale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en_EN", locale.ToLocale("EN"))
	assert.Equal(t, "fr_FR", locale.ToLocale("fr"))
	assert.Equal(t, "Key", locale.ToLocale("Key"))
	assert.Equal(t, "key-old-2", locale.ToLocale("key-old-2"))
	assert.Equal(t, "fr_FR", locale.ToLocale("fr_FR"))
}

func TestIsLanguageCode(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"EN", "FR", "fr_FR", "EN_us", " PL "} {
		assert.True(t, locale.IsLanguageCode(v), v)
	}
	for _, v := range []string{"en", "de", "Key", "", "ENG", "XX", "fr-FR"} {
		assert.False(t, locale.IsLanguageCode(v), v)
	}
}

func TestRecognizedIsSorted(t *testing.T) {
	t.Parallel()

	codes := locale.Recognized()
	require.IsIncreasing(t, codes)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	code, err := locale.Normalize("fr_FR")
	require.NoError(t, err)
	require.Equal(t, "FR", code)

	code, err = locale.Normalize("nl")
	require.NoError(t, err)
	require.Equal(t, "NL", code)

	_, err = locale.Normalize("Key")
	require.ErrorIs(t, err, locale.ErrUnknownLanguage)
}

func TestNegotiate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "EN"},
		{"region subtag", "fr-CA", "FR"},
		{"quality order", "de;q=0.5, nl;q=0.9", "NL"},
		{"skips unknown", "xx, pl;q=0.3", "PL"},
		{"zero quality ignored", "fr;q=0, es;q=0.2", "ES"},
		{"wildcard only", "*", "EN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, locale.Negotiate(tt.header, "EN"))
		})
	}
}
