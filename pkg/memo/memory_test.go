package memo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/memo"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := memo.NewMemory()

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, memo.ErrNotFound)

	in := memo.Result{Text: "10\u00a0kg", Events: []changelog.Event{{Rule: "NBSP before units", Before: "10 kg", After: "10\u00a0kg"}}}
	require.NoError(t, m.Set(ctx, "k", in))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, in, got)

	got.Events[0].Rule = "mutated"
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "NBSP before units", again.Events[0].Rule)
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := memo.NewMemory(memo.WithMaxEntries(2))

	require.NoError(t, m.Set(ctx, "a", memo.Result{Text: "a"}))
	require.NoError(t, m.Set(ctx, "b", memo.Result{Text: "b"}))
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, m.Set(ctx, "c", memo.Result{Text: "c"}))

	assert.Equal(t, 2, m.Len())
	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, memo.ErrNotFound)
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestMemory_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := memo.NewMemory(memo.WithTTL(10 * time.Millisecond))

	require.NoError(t, m.Set(ctx, "k", memo.Result{Text: "v"}))
	require.Eventually(t, func() bool {
		_, err := m.Get(ctx, "k")
		return err != nil
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := memo.NewMemory()
	require.NoError(t, m.Set(ctx, "k", memo.Result{}))
	require.NoError(t, m.Close())

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, memo.ErrClosed)
	require.ErrorIs(t, m.Set(ctx, "k", memo.Result{}), memo.ErrClosed)
}
