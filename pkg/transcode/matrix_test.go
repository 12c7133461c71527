package transcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

func TestTranspose(t *testing.T) {
	t.Parallel()

	t.Run("involution on rectangular matrix", func(t *testing.T) {
		t.Parallel()
		m := transcode.Matrix{
			{"Key", "en_EN", "fr_FR"},
			{"a", "1", "2"},
		}
		once := transcode.Transpose(m)
		assert.Equal(t, transcode.Matrix{{"Key", "a"}, {"en_EN", "1"}, {"fr_FR", "2"}}, once)
		assert.Equal(t, m, transcode.Transpose(once))
	})

	t.Run("jagged matrix is padded", func(t *testing.T) {
		t.Parallel()
		m := transcode.Matrix{
			{"a"},
			{"b", "c", "d"},
			{},
		}
		got := transcode.Transpose(m)
		require.Len(t, got, 3)
		assert.Equal(t, transcode.Matrix{
			{"a", "b", ""},
			{"", "c", ""},
			{"", "d", ""},
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, transcode.Transpose(nil))
	})
}

func TestColumns(t *testing.T) {
	t.Parallel()

	row := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "x", "b", "c"}, transcode.InsertColumn(row, 1, "x"))
	assert.Equal(t, []string{"x", "a", "b", "c"}, transcode.InsertColumn(row, 0, "x"))
	assert.Equal(t, []string{"a", "b", "c", "x"}, transcode.InsertColumn(row, 10, "x"))
	assert.Equal(t, []string{"a", "c"}, transcode.RemoveColumn(row, 1))
	assert.Equal(t, []string{"a", "b", "c"}, transcode.RemoveColumn(row, 5))
	assert.Equal(t, []string{"a", "b", "c"}, row, "input must not change")
}

func TestFlatText(t *testing.T) {
	t.Parallel()

	m := transcode.ParseFlat("code\tKey\r\n\nA1\tEN\n  \nA1\tFR\n")
	assert.Equal(t, transcode.Matrix{{"code", "Key"}, {"A1", "EN"}, {"A1", "FR"}}, m)
	assert.Equal(t, "code\tKey\nA1\tEN\nA1\tFR", transcode.FormatFlat(m))
	assert.Empty(t, transcode.ParseFlat(""))
}

func TestExtractIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"brackets", "menu [A12].xlsx", "A12", true},
		{"parentheses", "menu (B7).xlsx", "B7", true},
		{"brackets preferred", "menu (B7) [A12].xlsx", "A12", true},
		{"directory ignored", "/tmp/[dir]/menu.xlsx", "", false},
		{"trimmed", "menu [ A12 ].txt", "A12", true},
		{"empty brackets skipped", "menu [] (C3).xlsx", "C3", true},
		{"none", "menu.xlsx", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := transcode.ExtractIdentifier(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
