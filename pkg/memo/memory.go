package memo

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time // zero value = never expires
	result    Result
	key       string
}

func (e *entry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryOption configures the in-memory store.
type MemoryOption func(*Memory)

// WithTTL sets how long entries live. Zero or negative means forever.
// Default: 1 hour.
func WithTTL(d time.Duration) MemoryOption {
	return func(m *Memory) {
		m.ttl = d
	}
}

// WithMaxEntries caps the number of entries; the least recently used entry
// is evicted first. Zero means unlimited.
// Default: 10000.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		m.maxEntries = max(n, 0)
	}
}

// Memory is an in-process LRU store with TTL expiration checked on access.
type Memory struct {
	items      map[string]*list.Element
	eviction   *list.List
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	mu         sync.Mutex
	closed     bool
}

// NewMemory creates an in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items:      make(map[string]*list.Element),
		eviction:   list.New(),
		now:        time.Now,
		ttl:        time.Hour,
		maxEntries: 10000,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the stored result and marks it recently used.
func (m *Memory) Get(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Result{}, ErrClosed
	}

	elem, ok := m.items[key]
	if !ok {
		return Result{}, ErrNotFound
	}

	e := elem.Value.(*entry)
	if e.isExpired(m.now()) {
		m.removeElement(elem)
		return Result{}, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return Result{Text: e.result.Text, Events: slices.Clone(e.result.Events)}, nil
}

// Set stores a result, evicting the least recently used entry when full.
func (m *Memory) Set(_ context.Context, key string, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}
	r.Events = slices.Clone(r.Events)

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry)
		e.result = r
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&entry{key: key, result: r, expiresAt: expiresAt})
	return nil
}

// Len returns the number of entries, including expired ones not yet collected.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close drops every entry; later calls return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.items = make(map[string]*list.Element)
	m.eviction.Init()
	return nil
}

// removeElement drops elem. Caller must hold the mutex.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*entry).key)
}

var _ Store = (*Memory)(nil)
