package nbsp

import (
	"context"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/memo"
	"github.com/dmitrymomot/nbspace/pkg/rules"
)

// Engine runs Normalize, optionally through a result memo.
// The zero value normalizes without caching.
type Engine struct {
	memo *memo.Memo
}

// Option configures an Engine.
type Option func(*Engine)

// WithMemo caches results; cached hits replay their events to the sink.
func WithMemo(m *memo.Memo) Option {
	return func(e *Engine) {
		e.memo = m
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize behaves like the package-level Normalize.
func (e *Engine) Normalize(ctx context.Context, text, lang string, s rules.Settings, sink changelog.Sink) string {
	if e == nil || e.memo == nil || text == "" {
		return Normalize(text, lang, s, sink)
	}

	key := memo.Key(strings.ToUpper(locale.ToShort(lang)), s.Fingerprint(), text)
	res := e.memo.GetOrCompute(ctx, key, func() memo.Result {
		var log changelog.Log
		out := Normalize(text, lang, s, &log)
		return memo.Result{Text: out, Events: log.Events()}
	})

	if sink != nil {
		for _, ev := range res.Events {
			sink.Record(ev)
		}
	}
	return res.Text
}
