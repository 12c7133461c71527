// Package memo caches normalization results.
//
// Localization sheets repeat themselves: the same unit strings, prices and
// boilerplate sentences show up in every file and every language column.
// A Memo stores the normalized text together with the change events it
// produced, keyed by language, rule settings and input, so that a cached hit
// replays exactly the events a fresh run would have recorded.
//
// Two stores are provided: Memory, an in-process LRU with TTL, and Redis,
// for sharing results between API replicas.
//
//	m := memo.New(memo.NewMemory(memo.WithMaxEntries(50_000)))
//	res, err := m.GetOrCompute(ctx, memo.Key("FR", fp, text), func() memo.Result {
//	    return compute(text)
//	})
//
// Concurrent misses for the same key are computed once.
package memo
