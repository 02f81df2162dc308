package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	webscrape "github.com/codermillat/WebScrape-sub000"
)

// AnchorKind classifies a sweep candidate anchor.
type AnchorKind string

// Sweep anchor kinds.
const (
	AnchorPagination AnchorKind = "pagination"
	AnchorTab        AnchorKind = "tab"
)

// SweepAnchor is a candidate page discovered by anchor-text heuristics.
type SweepAnchor struct {
	URL  string
	Text string
	Kind AnchorKind
}

// binaryExtensions are document/binary suffixes never fetched by a sweep.
var binaryExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".zip", ".rar", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg",
	".mp3", ".mp4", ".avi", ".exe", ".apk",
}

// CollectSweepAnchors gathers pagination and tab candidate anchors from a
// page. An anchor qualifies when its visible text matches the pagination or
// tab lexicon; fragment-only and script hrefs and known binary/document
// extensions are excluded. URLs are resolved absolute and deduplicated by
// URL, first occurrence wins; an anchor matching both lexicons classifies
// as pagination. Same-origin enforcement is the fetcher's responsibility.
func CollectSweepAnchors(rawHTML string, baseURL string) ([]SweepAnchor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webscrape.Errorf(webscrape.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webscrape.Errorf(webscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var anchors []SweepAnchor

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}
		if hasBinaryExtension(href) {
			return
		}

		text := webscrape.CleanText(sel.Text())
		if text == "" {
			return
		}

		var kind AnchorKind
		switch {
		case webscrape.PaginationTokenRe.MatchString(text):
			kind = AnchorPagination
		case webscrape.TabTokenRe.MatchString(text):
			kind = AnchorTab
		default:
			return
		}

		resolved := resolveHref(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		// An anchor resolving to the page itself reveals nothing new.
		if stripFragment(resolved) == stripFragment(base.String()) {
			return
		}
		seen[resolved] = true
		anchors = append(anchors, SweepAnchor{URL: resolved, Text: text, Kind: kind})
	})

	return anchors, nil
}

func hasBinaryExtension(href string) bool {
	lower := strings.ToLower(href)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func stripFragment(rawURL string) string {
	if i := strings.Index(rawURL, "#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
