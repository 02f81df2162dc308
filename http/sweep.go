package http

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/bloom"
	wsgoquery "github.com/codermillat/WebScrape-sub000/goquery"
)

// Bloom sizing for per-sweep URL tracking.
const (
	sweepExpectedURLs      = 1000
	sweepFalsePositiveRate = 0.01
)

// Ensure LinkSweep implements webscrape.LinkSweeper at compile time.
var _ webscrape.LinkSweeper = (*LinkSweep)(nil)

// LinkSweep discovers pagination/tab anchors by text heuristics and fetches
// their HTML without navigating a live page. It complements the click-based
// sweep for server-rendered pagination, where fetch-and-parse is cheaper
// and side-effect-free.
type LinkSweep struct {
	fetcher       webscrape.Fetcher
	limiter       *DomainLimiter
	logger        *slog.Logger
	timeout       time.Duration
	maxPagination int
	maxTab        int
}

// SweepOption configures a LinkSweep.
type SweepOption func(*LinkSweep)

// WithSweepTimeout bounds each candidate fetch.
// Defaults to webscrape.DefaultLinkSweepTimeout.
func WithSweepTimeout(d time.Duration) SweepOption {
	return func(s *LinkSweep) { s.timeout = d }
}

// WithSweepCaps overrides the per-kind page caps.
func WithSweepCaps(pagination, tab int) SweepOption {
	return func(s *LinkSweep) {
		s.maxPagination = pagination
		s.maxTab = tab
	}
}

// WithLimiter attaches a per-domain rate limiter.
func WithLimiter(limiter *DomainLimiter) SweepOption {
	return func(s *LinkSweep) { s.limiter = limiter }
}

// NewLinkSweep creates a LinkSweep fetching through the given fetcher.
func NewLinkSweep(fetcher webscrape.Fetcher, logger *slog.Logger, opts ...SweepOption) *LinkSweep {
	s := &LinkSweep{
		fetcher:       fetcher,
		logger:        logger,
		timeout:       webscrape.DefaultLinkSweepTimeout,
		maxPagination: webscrape.MaxPaginationPages,
		maxTab:        webscrape.MaxTabPages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepExtended returns raw HTML bodies of same-origin pagination and tab
// pages linked from pageHTML, up to the per-kind caps. Cross-origin and
// failed fetches are silently omitted and never retried; fetched bodies are
// deduplicated by cheap length+prefix signature.
func (s *LinkSweep) SweepExtended(ctx context.Context, pageHTML, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webscrape.Errorf(webscrape.EINVALID, "invalid base URL: %v", err)
	}

	anchors, err := wsgoquery.CollectSweepAnchors(pageHTML, baseURL)
	if err != nil {
		return nil, err
	}

	seen := bloom.NewFilter(sweepExpectedURLs, sweepFalsePositiveRate)
	seen.Add(baseURL)

	bodySigs := make(map[string]bool)
	var pages []string
	paginationCount, tabCount := 0, 0

	for _, anchor := range anchors {
		if paginationCount >= s.maxPagination && tabCount >= s.maxTab {
			break
		}
		switch anchor.Kind {
		case wsgoquery.AnchorPagination:
			if paginationCount >= s.maxPagination {
				continue
			}
		case wsgoquery.AnchorTab:
			if tabCount >= s.maxTab {
				continue
			}
		}

		// Same-origin policy is enforced explicitly, not just inherited
		// from fetch defaults.
		target, err := url.Parse(anchor.URL)
		if err != nil || target.Host != base.Host || target.Scheme != base.Scheme {
			continue
		}

		if seen.TestAndAdd(anchor.URL) {
			continue
		}

		body, err := s.fetchOne(ctx, target.Host, anchor.URL)
		if err != nil {
			if ctx.Err() != nil {
				return pages, ctx.Err()
			}
			if s.logger != nil {
				s.logger.Debug("sweep fetch skipped", "url", anchor.URL, "error", err)
			}
			continue
		}

		sig := webscrape.CheapSignature(body)
		if bodySigs[sig] {
			continue
		}
		bodySigs[sig] = true

		pages = append(pages, body)
		switch anchor.Kind {
		case wsgoquery.AnchorPagination:
			paginationCount++
		case wsgoquery.AnchorTab:
			tabCount++
		}
	}

	return pages, nil
}

func (s *LinkSweep) fetchOne(ctx context.Context, host, target string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, host); err != nil {
			return "", err
		}
	}
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.fetcher.Fetch(fetchCtx, target)
}
