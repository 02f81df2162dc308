package webscrape

import "context"

// MaxMemoryLines caps the line memory. On overflow the least-recently-used
// tenth is evicted in one pass.
const MaxMemoryLines = 20000

// LineMemory is the line-level deduplication store. Lines are keyed by
// their normalized form (see NormalizeLine).
type LineMemory interface {
	// RememberLine records a line. Returns true if the line was newly
	// inserted, false if its normalized form was already known (in which
	// case only its recency is refreshed). If alreadyNormalized is true
	// the line is used as the key verbatim.
	RememberLine(line string, alreadyNormalized bool) bool

	// RememberLines records a batch of lines and returns the number of
	// new insertions.
	RememberLines(lines []string) int

	// HasLine reports whether the line's normalized form is known.
	// It is a pure lookup and does not update recency.
	HasLine(line string) bool

	// Len returns the number of remembered lines.
	Len() int
}

// LineStore persists line-memory keys. Persistence is best-effort: only the
// normalized keys survive a restart, which is all deduplication needs.
type LineStore interface {
	// SaveKeys replaces the persisted key set.
	SaveKeys(ctx context.Context, keys []string) error

	// LoadKeys returns the persisted key set.
	LoadKeys(ctx context.Context) ([]string, error)
}
