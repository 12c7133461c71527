//go:build integration

package memo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/memo"
)

const testRedisURL = "redis://localhost:6379/0"

func TestRedis_RoundTrip(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := memo.OpenRedis(ctx, url, 3, 100*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := memo.NewRedis(client, memo.WithPrefix("test-memo"), memo.WithRedisTTL(time.Minute))
	require.NoError(t, store.Ping(ctx))

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, memo.ErrNotFound)

	in := memo.Result{Text: "50\u00a0%", Events: []changelog.Event{{Rule: "Percent formatting", Before: "50 %", After: "50\u00a0%"}}}
	require.NoError(t, store.Set(ctx, "k", in))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, in, got)
}
