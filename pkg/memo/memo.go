package memo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
)

// Result is a normalized text and the events recorded while producing it.
// Event locations are left empty; callers stamp them on replay.
type Result struct {
	Text   string            `json:"text"`
	Events []changelog.Event `json:"events,omitempty"`
}

// Store persists results.
type Store interface {
	// Get returns ErrNotFound on a miss.
	Get(ctx context.Context, key string) (Result, error)
	Set(ctx context.Context, key string, r Result) error
}

// Key derives a store key from the language, a settings fingerprint and the input text.
func Key(lang, fingerprint, text string) string {
	h := sha256.New()
	h.Write([]byte(lang))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Memo deduplicates and caches result computation.
type Memo struct {
	store  Store
	group  singleflight.Group
	logger *slog.Logger
}

// Option configures a Memo.
type Option func(*Memo)

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Memo) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Memo backed by store.
func New(store Store, opts ...Option) *Memo {
	m := &Memo{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOrCompute returns the stored result for key or computes, stores and
// returns a fresh one. Concurrent misses for the same key share one
// computation. Store failures are logged and never fail the call.
func (m *Memo) GetOrCompute(ctx context.Context, key string, compute func() Result) Result {
	if r, err := m.store.Get(ctx, key); err == nil {
		return r
	} else if !errors.Is(err, ErrNotFound) {
		m.logger.WarnContext(ctx, "memo lookup failed", slog.String("error", err.Error()))
	}

	v, _, _ := m.group.Do(key, func() (any, error) {
		r := compute()
		if err := m.store.Set(ctx, key, r); err != nil {
			m.logger.WarnContext(ctx, "memo store failed", slog.String("error", err.Error()))
		}
		return r, nil
	})

	return v.(Result)
}
