// Package dedupe provides the line-level deduplication memory: an LRU-bounded
// store of normalized line keys with lazy, best-effort persistence.
package dedupe

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// PersistInterval is the minimum spacing between persistence flushes.
// Persistence is best-effort and lazy; the in-memory state stays
// authoritative for the session regardless of flush outcomes.
const PersistInterval = 15 * time.Second

// evictKeepRatio is the fraction of the cap the store shrinks to when it
// overflows.
const evictKeepRatio = 0.9

// Ensure Memory implements webscrape.LineMemory at compile time.
var _ webscrape.LineMemory = (*Memory)(nil)

// entry is one remembered line.
type entry struct {
	line string // original form; lost across restarts
	ts   time.Time
	len  int
}

// Memory is an in-memory, LRU-bounded line deduplication store.
// It is safe for concurrent use by multiple goroutines.
type Memory struct {
	mu        sync.Mutex
	lines     map[string]*entry // keyed by normalized line
	maxLines  int
	store     webscrape.LineStore
	logger    *slog.Logger
	now       func() time.Time
	lastFlush time.Time
	dirty     bool
}

// Option configures a Memory.
type Option func(*Memory)

// WithMaxLines overrides the line cap. Defaults to webscrape.MaxMemoryLines.
func WithMaxLines(n int) Option {
	return func(m *Memory) { m.maxLines = n }
}

// WithStore attaches a persistence backend. Without one the memory is
// session-only.
func WithStore(store webscrape.LineStore) Option {
	return func(m *Memory) { m.store = store }
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates a line memory.
func NewMemory(logger *slog.Logger, opts ...Option) *Memory {
	m := &Memory{
		lines:    make(map[string]*entry),
		maxLines: webscrape.MaxMemoryLines,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastFlush = m.now()
	return m
}

// Load restores persisted normalized keys. Original line text is not
// recoverable across restarts; deduplication only needs the keys.
func (m *Memory) Load(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	keys, err := m.store.LoadKeys(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.now()
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := m.lines[key]; !ok {
			m.lines[key] = &entry{line: key, ts: ts, len: len(key)}
		}
	}
	m.evictLocked()
	return nil
}

// RememberLine records a line, returning true if it was newly inserted.
// A repeat sighting only refreshes recency.
func (m *Memory) RememberLine(line string, alreadyNormalized bool) bool {
	key := line
	if !alreadyNormalized {
		key = webscrape.NormalizeLine(line)
	}
	if key == "" {
		return false
	}

	m.mu.Lock()
	added := m.rememberLocked(line, key)
	m.mu.Unlock()

	m.maybeFlush()
	return added
}

// RememberLines records a batch and returns the number of new insertions.
func (m *Memory) RememberLines(lines []string) int {
	added := 0
	m.mu.Lock()
	for _, line := range lines {
		key := webscrape.NormalizeLine(line)
		if key == "" {
			continue
		}
		if m.rememberLocked(line, key) {
			added++
		}
	}
	m.mu.Unlock()

	m.maybeFlush()
	return added
}

// HasLine reports whether the line is known without updating recency.
func (m *Memory) HasLine(line string) bool {
	key := webscrape.NormalizeLine(line)
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lines[key]
	return ok
}

// Len returns the number of remembered lines.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// Flush persists the key set immediately, regardless of the lazy interval.
func (m *Memory) Flush(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	m.mu.Lock()
	keys := make([]string, 0, len(m.lines))
	for key := range m.lines {
		keys = append(keys, key)
	}
	m.lastFlush = m.now()
	m.dirty = false
	m.mu.Unlock()

	return m.store.SaveKeys(ctx, keys)
}

func (m *Memory) rememberLocked(line, key string) bool {
	ts := m.now()
	if e, ok := m.lines[key]; ok {
		e.ts = ts
		return false
	}
	m.lines[key] = &entry{line: line, ts: ts, len: len(line)}
	m.dirty = true
	m.evictLocked()
	return true
}

// evictLocked shrinks the store to evictKeepRatio of the cap when it
// overflows, dropping least-recently-used entries in one pass.
func (m *Memory) evictLocked() {
	if len(m.lines) <= m.maxLines {
		return
	}
	type aged struct {
		key string
		ts  time.Time
	}
	entries := make([]aged, 0, len(m.lines))
	for key, e := range m.lines {
		entries = append(entries, aged{key: key, ts: e.ts})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ts.Before(entries[j].ts)
	})
	target := int(float64(m.maxLines) * evictKeepRatio)
	for _, e := range entries {
		if len(m.lines) <= target {
			break
		}
		delete(m.lines, e.key)
	}
}

// maybeFlush persists at most once per PersistInterval. Failures are
// logged, never surfaced.
func (m *Memory) maybeFlush() {
	if m.store == nil {
		return
	}
	m.mu.Lock()
	due := m.dirty && m.now().Sub(m.lastFlush) >= PersistInterval
	m.mu.Unlock()
	if !due {
		return
	}
	if err := m.Flush(context.Background()); err != nil && m.logger != nil {
		m.logger.Warn("line memory persistence failed", "error", err)
	}
}
