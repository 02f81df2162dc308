package webscrape

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Capture body kinds stored in the content-addressable body store.
const (
	BodyKindRaw = "raw" // extracted structured text
	BodyKindLLM = "llm" // markdown rendering of the main container
)

// Capture is one labeled, user-triggered snapshot of a page. The full text
// body is stored separately, keyed by capture ID and kind, to keep the
// index lightweight.
type Capture struct {
	ID        string    `json:"id"`
	PageKey   string    `json:"pageKey"`
	Label     string    `json:"label"`
	Preview   string    `json:"preview"` // truncated text
	Length    int       `json:"len"`
	Sig       string    `json:"sig"`  // exact content hash
	Sig2      string    `json:"sig2"` // stable, digit-normalized hash
	Timestamp time.Time `json:"timestamp"`
	Selected  bool      `json:"selected"`
}

// Validate returns an error if the capture contains invalid fields.
func (c *Capture) Validate() error {
	if c.PageKey == "" {
		return Errorf(EINVALID, "capture page key required")
	}
	if c.Sig == "" {
		return Errorf(EINVALID, "capture signature required")
	}
	return nil
}

// Page groups captures of one logical page. Pages are keyed by a
// normalized URL so re-captures of the same page group together.
type Page struct {
	Key       string     `json:"key"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Captures  []*Capture `json:"captures"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	PageSig   string     `json:"pageSig"`
	Collapsed bool       `json:"collapsed"`
}

// SignatureEntry is one entry in the global signature registry shared
// across all pages and sites.
type SignatureEntry struct {
	Sig string    `json:"sig"`
	TS  time.Time `json:"ts"`
	URL string    `json:"url"`
}

// AddCaptureResult reports the outcome of AddCapture. A nil-equivalent
// CaptureID with a non-empty PageKey signals a duplicate no-op, which is
// feedback for the caller, not an error.
type AddCaptureResult struct {
	PageKey   string `json:"pageKey"`
	CaptureID string `json:"captureId,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

// AddCaptureOptions configures AddCapture.
type AddCaptureOptions struct {
	// Force inserts the capture even if a signature collides with an
	// existing capture on the same page or in the global registry.
	Force bool

	// LLMBody, if non-empty, is stored as the capture's llm-kind body.
	LLMBody string
}

// CaptureService is the durable record of user-labeled captures grouped by
// normalized page URL.
type CaptureService interface {
	// AddCapture records a capture of text for the page identified by url.
	// It rejects the capture as a duplicate (Duplicate=true, empty
	// CaptureID) when either signature of the text already exists within
	// the same page or in the global signature registry, unless forced.
	AddCapture(ctx context.Context, url, title, label, text string, opts AddCaptureOptions) (*AddCaptureResult, error)

	// FindPages returns all pages, most recently updated first.
	FindPages(ctx context.Context) ([]*Page, error)

	// FindPageByKey returns one page with its captures.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByKey(ctx context.Context, key string) (*Page, error)

	// CaptureBody returns the stored body of a capture for the given kind.
	// Returns ENOTFOUND if the capture or body does not exist.
	CaptureBody(ctx context.Context, captureID, kind string) (string, error)

	// SetSelected sets the selection state of a capture.
	SetSelected(ctx context.Context, captureID string, selected bool) error

	// CombineSelected concatenates the full raw bodies of a page's
	// selected captures in order, appending a "Source: <url>" trailer if
	// not already present. Returns ENOTFOUND if the page does not exist.
	CombineSelected(ctx context.Context, pageKey string) (string, error)

	// DeleteCapture removes a capture, its bodies, and its global
	// signatures. Returns ENOTFOUND if the capture does not exist.
	DeleteCapture(ctx context.Context, captureID string) error

	// DeletePage removes a page with all its captures, bodies and global
	// signatures. Returns ENOTFOUND if the page does not exist.
	DeletePage(ctx context.Context, key string) error
}

// PreviewLength bounds the capture preview stored in the index.
const PreviewLength = 160

// NormalizePageKey reduces a URL to the key under which its captures are
// grouped: lowercase host without a leading "www.", plus the path without a
// trailing slash. Query strings and fragments are dropped. Invalid URLs
// fall back to the raw string so grouping still works.
func NormalizePageKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(rawURL)), "/")
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	path := strings.TrimSuffix(u.Path, "/")
	return host + path
}

// Preview truncates text for display in the capture index.
func Preview(text string) string {
	cleaned := CleanText(text)
	runes := []rune(cleaned)
	if len(runes) <= PreviewLength {
		return cleaned
	}
	return string(runes[:PreviewLength])
}
