package webscrape

import (
	"context"
	"regexp"
	"time"
)

// Sweep tuning. Named so site-specific adjustments don't touch core logic.
const (
	// DefaultMutationWait bounds the wait for a DOM mutation after each
	// reveal click. Revealed content frequently loads asynchronously with
	// no completion event, so the wait resolves on signature change or
	// timeout, whichever comes first.
	DefaultMutationWait = 2 * time.Second

	// DefaultScrollDelay is the pause between lazy-load scroll steps.
	DefaultScrollDelay = 250 * time.Millisecond

	// DefaultSweepLimit is the hard safety counter bounding reveal
	// iterations against broken or near-infinite pagination.
	DefaultSweepLimit = 40

	// SweepStalledLimit ends a sweep after this many consecutive reveals
	// whose container signature did not change.
	SweepStalledLimit = 2

	// MaxPaginationPages caps fetched pagination pages in a link sweep.
	MaxPaginationPages = 8

	// MaxTabPages caps fetched tab pages in a link sweep.
	MaxTabPages = 12

	// DefaultLinkSweepTimeout bounds each link-sweep fetch.
	DefaultLinkSweepTimeout = 10 * time.Second
)

// Anchor-text lexicons for the fetch-based link sweep.
var (
	// PaginationTokenRe matches anchor text of pagination controls.
	PaginationTokenRe = regexp.MustCompile(`(?i)\b(page|next|prev|previous|older|newer|more)\b|^\d{1,3}$|^[»›]$`)

	// TabTokenRe matches anchor text of tab-style section links.
	TabTokenRe = regexp.MustCompile(`(?i)\b(tab|overview|fees?|eligibility|admission|курс|courses?|programs?|programmes?|placement|scholarship|hostel|syllabus)\b`)
)

// SweepConfig tunes a dynamic sweep.
type SweepConfig struct {
	MutationWait time.Duration
	ScrollDelay  time.Duration
	Limit        int // safety counter; 0 means DefaultSweepLimit

	// DrillDown enables the two-phase variant for grid/list layouts:
	// per-item fee toggles are expanded before each page-level pagination
	// advance.
	DrillDown bool
}

// SweepTermination records why a sweep ended.
type SweepTermination string

// Sweep termination reasons.
const (
	SweepCompleted     SweepTermination = "completed"      // full trigger/pagination pass finished
	SweepStalled       SweepTermination = "stalled"        // signature failed to change twice in a row
	SweepLimitExceeded SweepTermination = "limit_exceeded" // safety counter exhausted
)

// SweepResult is the merged outcome of a dynamic sweep.
type SweepResult struct {
	// Lines are the accumulated extracted lines, deduplicated by
	// normalized line text, in first-seen order.
	Lines []string

	// Reveals counts triggers that produced a signature change.
	Reveals int

	// Iterations counts all attempted reveals.
	Iterations int

	Termination SweepTermination
}

// Sweeper reveals and extracts content hidden behind tabs, accordions and
// pagination on a live page. Reveals are strictly sequential: one trigger's
// mutation is awaited before the next trigger fires, because concurrent
// triggers would race on the same DOM subtree and corrupt the "before"
// signatures.
type Sweeper interface {
	Sweep(ctx context.Context, url string, cfg SweepConfig) (*SweepResult, error)
	Close() error
}

// TriggerKind classifies a reveal trigger.
type TriggerKind string

// Reveal trigger kinds.
const (
	TriggerTab        TriggerKind = "tab"
	TriggerAccordion  TriggerKind = "accordion"
	TriggerPagination TriggerKind = "pagination"
	TriggerItemToggle TriggerKind = "item_toggle" // per-item fee toggle in grid layouts
)

// Trigger is one clickable reveal control on a live page.
type Trigger struct {
	ID    int // stable within one enumeration
	Kind  TriggerKind
	Label string
}

// PageSession is one attached live page. Implementations wrap browser
// automation; every method honors the context's deadline.
type PageSession interface {
	// Navigate loads the URL and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// Metrics returns the current scroll height and viewport height.
	Metrics(ctx context.Context) (scrollHeight, viewportHeight float64, err error)

	// ScrollTo scrolls the viewport to the vertical offset.
	ScrollTo(ctx context.Context, y float64) error

	// HTML returns the page's current rendered HTML.
	HTML(ctx context.Context) (string, error)

	// Triggers enumerates reveal controls within or near the main
	// container, in document order.
	Triggers(ctx context.Context) ([]Trigger, error)

	// Click fires a trigger. A missing trigger (stale enumeration) is an
	// error the caller treats as "no new content".
	Click(ctx context.Context, t Trigger) error

	// Close releases the page.
	Close() error
}

// SessionOpener opens live page sessions.
type SessionOpener interface {
	Open(ctx context.Context) (PageSession, error)
	Close() error
}

// LinkSweeper discovers candidate pagination/tab anchors by text heuristics
// and fetches their HTML without navigating a live page. It complements the
// click-based sweep for server-rendered pagination where fetch-and-parse is
// cheaper and side-effect-free.
type LinkSweeper interface {
	// SweepExtended returns raw HTML bodies of same-origin pagination and
	// tab pages linked from the given page HTML, deduplicated by cheap
	// signature, up to MaxPaginationPages and MaxTabPages respectively.
	SweepExtended(ctx context.Context, pageHTML, baseURL string) ([]string, error)
}
