package keydiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/nbspace/pkg/keydiff"
)

func TestFromMatrix(t *testing.T) {
	t.Parallel()

	k := keydiff.FromMatrix([][]string{
		{"Key", "en_EN"},
		{" title ", " Hello "},
		{"", "skipped"},
		{},
		{"bye"},
		{"title", "Hi"},
	})

	assert.Equal(t, 2, k.Len())
	v, ok := k.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Hi", v)
	v, ok = k.Get("bye")
	assert.True(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, []string{"bye", "title"}, k.Names())
	assert.Equal(t, []string{"title"}, k.Duplicates())
}

func TestCompare(t *testing.T) {
	t.Parallel()

	first := keydiff.FromMatrix([][]string{
		{"Key", "en_EN"},
		{"a", "1"},
		{"b", "2"},
		{"c", "3"},
		{"c", "3"},
	})
	second := keydiff.FromMatrix([][]string{
		{"Key", "en_EN"},
		{"b", "2"},
		{"c", "three"},
		{"d", "4"},
		{"e", "5"},
	})

	d := keydiff.Compare(first, second)
	assert.Equal(t, []string{"a"}, d.OnlyInFirst)
	assert.Equal(t, []string{"d", "e"}, d.OnlyInSecond)
	assert.Equal(t, []keydiff.Change{{Key: "c", First: "3", Second: "three"}}, d.Changed)
	assert.True(t, d.CountMismatch)
	assert.Equal(t, 3, d.FirstCount)
	assert.Equal(t, 4, d.SecondCount)
	assert.Equal(t, []string{"c"}, d.FirstDuplicates)
	assert.Empty(t, d.SecondDuplicates)
	assert.False(t, d.Identical())

	t.Run("identical", func(t *testing.T) {
		t.Parallel()
		d := keydiff.Compare(second, second)
		assert.True(t, d.Identical())
		assert.Empty(t, d.OnlyInFirst)
		assert.Empty(t, d.Changed)
	})

	t.Run("count mismatch is independent", func(t *testing.T) {
		t.Parallel()
		a := keydiff.FromMatrix([][]string{{"Key"}, {"x", "1"}})
		b := keydiff.FromMatrix([][]string{{"Key"}, {"y", "1"}})
		d := keydiff.Compare(a, b)
		assert.False(t, d.CountMismatch)
		assert.Equal(t, []string{"x"}, d.OnlyInFirst)
		assert.Equal(t, []string{"y"}, d.OnlyInSecond)
	})
}
