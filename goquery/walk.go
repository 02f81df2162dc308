// Package goquery provides DOM traversal, boilerplate detection and
// main-content selection over parsed HTML documents.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	webscrape "github.com/codermillat/WebScrape-sub000"
	"golang.org/x/net/html"
)

// Ensure Walker implements webscrape.Walker at compile time.
var _ webscrape.Walker = (*Walker)(nil)

// Walker extracts a structured snapshot from HTML in a single tree
// traversal in document order, rather than multiple querySelectorAll-style
// passes.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// walkState carries accumulation state through one traversal.
type walkState struct {
	opts    webscrape.WalkOptions
	base    *url.URL
	result  *webscrape.ExtractResult
	seen    map[string]map[string]bool // category → cleaned value
	linkSet map[string]bool            // text+href dedupe
}

// Walk traverses the document and returns the extraction result.
// Any single-node processing panic is recovered and that node skipped; the
// walk never aborts on a per-node failure.
func (w *Walker) Walk(rawHTML string, baseURL string, opts webscrape.WalkOptions) (*webscrape.ExtractResult, error) {
	if opts.MaxTables <= 0 {
		opts.MaxTables = webscrape.DefaultMaxTables
	}
	if opts.MaxTableRows <= 0 {
		opts.MaxTableRows = webscrape.DefaultMaxTableRows
	}
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = webscrape.DefaultMaxLinks
	}
	if opts.MaxImages <= 0 {
		opts.MaxImages = webscrape.DefaultMaxImages
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webscrape.Errorf(webscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	st := &walkState{
		opts:    opts,
		base:    base,
		result:  &webscrape.ExtractResult{Meta: make(map[string]string)},
		seen:    make(map[string]map[string]bool),
		linkSet: make(map[string]bool),
	}

	st.walk(root, walkContext{})
	return st.result, nil
}

// WalkSelection extracts from a scoped container instead of the full
// document, using the same traversal.
func (w *Walker) WalkSelection(sel *goquery.Selection, baseURL string, opts webscrape.WalkOptions) (*webscrape.ExtractResult, error) {
	if len(sel.Nodes) == 0 {
		return nil, webscrape.Errorf(webscrape.EINVALID, "empty selection")
	}
	var b strings.Builder
	for _, n := range sel.Nodes {
		if err := html.Render(&b, n); err != nil {
			return nil, err
		}
	}
	return w.Walk(b.String(), baseURL, opts)
}

// walkContext carries per-subtree flags down the traversal.
type walkContext struct {
	inTable      bool
	inBlockquote bool
	inListItem   bool
}

func (st *walkState) walk(n *html.Node, wc walkContext) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template", "iframe", "svg":
			return
		}

		if !st.opts.IncludeHidden && !nodeVisible(n) {
			return
		}
		if st.opts.ExcludeBoilerplate && IsBoilerplateNode(n) {
			return
		}

		wc = st.visit(n, wc)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		st.walk(c, wc)
	}
}

// visit dispatches one element node, recovering from per-node panics.
func (st *walkState) visit(n *html.Node, wc walkContext) (out walkContext) {
	out = wc
	defer func() {
		_ = recover() // skip the node, keep walking
	}()

	switch n.Data {
	case "title":
		if st.result.Title == "" {
			st.result.Title = webscrape.CleanText(nodeText(n))
		}
	case "meta":
		st.collectMeta(n)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !wc.inTable {
			level := n.Data[1:]
			if text := webscrape.CleanText(nodeText(n)); text != "" {
				st.appendString("headings", &st.result.Headings, "H"+level+": "+text)
			}
		}
	case "p":
		if !wc.inTable && !wc.inBlockquote {
			if text := webscrape.CleanText(nodeText(n)); text != "" {
				st.appendString("paragraphs", &st.result.Paragraphs, text)
			}
		}
	case "blockquote":
		if !wc.inTable {
			if text := webscrape.CleanText(nodeText(n)); text != "" {
				st.appendString("paragraphs", &st.result.Paragraphs, "> "+text)
			}
			out.inBlockquote = true
		}
	case "li":
		if !wc.inTable && !wc.inListItem {
			if text := webscrape.CleanText(nodeText(n)); text != "" {
				st.appendString("lists", &st.result.Lists, "• "+text)
			}
			out.inListItem = true
		}
	case "table":
		if !wc.inTable && len(st.result.Tables) < st.opts.MaxTables {
			if table := parseTable(n, st.opts.MaxTableRows); table != nil {
				st.result.Tables = append(st.result.Tables, *table)
				for _, row := range table.Rows {
					for _, cell := range row {
						st.result.RawLength += len(cell)
					}
				}
			}
			out.inTable = true
		}
	case "a":
		st.collectLink(n)
	case "img":
		st.collectImage(n)
	}

	return out
}

// appendString adds a value to a category with exact-match deduplication.
// Deduplication is per category, not global, to avoid immediate repeats
// while keeping legitimate cross-category duplicates.
func (st *walkState) appendString(category string, dst *[]string, value string) {
	set := st.seen[category]
	if set == nil {
		set = make(map[string]bool)
		st.seen[category] = set
	}
	if set[value] {
		return
	}
	set[value] = true
	*dst = append(*dst, value)
	st.result.RawLength += len(value)
}

func (st *walkState) collectMeta(n *html.Node) {
	key := attrValue(n, "name")
	if key == "" {
		key = attrValue(n, "property")
	}
	content := attrValue(n, "content")
	if key == "" || content == "" {
		return
	}
	// First occurrence wins.
	if _, ok := st.result.Meta[key]; !ok {
		st.result.Meta[key] = webscrape.CleanText(content)
	}
}

func (st *walkState) collectLink(n *html.Node) {
	if len(st.result.Links) >= st.opts.MaxLinks {
		return
	}
	href := strings.TrimSpace(attrValue(n, "href"))
	if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
		return
	}
	text := webscrape.CleanText(nodeText(n))
	if text == "" {
		return
	}
	resolved := resolveHref(st.base, href)
	if resolved == "" {
		return
	}
	key := text + "\x00" + resolved
	if st.linkSet[key] {
		return
	}
	st.linkSet[key] = true
	st.result.Links = append(st.result.Links, webscrape.Link{Text: text, Href: resolved})
}

func (st *walkState) collectImage(n *html.Node) {
	if len(st.result.Images) >= st.opts.MaxImages {
		return
	}
	alt := webscrape.CleanText(attrValue(n, "alt"))
	src := resolveHref(st.base, strings.TrimSpace(attrValue(n, "src")))
	if alt == "" && src == "" {
		return
	}
	img := webscrape.Image{Alt: alt, Src: src}
	if caption := figureCaption(n); caption != "" {
		img.Caption = caption
	}
	st.result.Images = append(st.result.Images, img)
}

// figureCaption returns the figcaption text when the image sits inside a
// figure element.
func figureCaption(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "figure" {
			for c := p.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "figcaption" {
					return webscrape.CleanText(nodeText(c))
				}
			}
			return ""
		}
	}
	return ""
}

// parseTable converts a table subtree into trimmed cell rows. Rows with no
// non-empty cell are dropped; rows are capped at maxRows.
func parseTable(n *html.Node, maxRows int) *webscrape.Table {
	table := &webscrape.Table{}

	var walkRows func(*html.Node)
	walkRows = func(node *html.Node) {
		if len(table.Rows) >= maxRows {
			return
		}
		if node.Type == html.ElementNode {
			switch node.Data {
			case "caption":
				table.Caption = webscrape.CleanText(nodeText(node))
				return
			case "tr":
				var row []string
				nonEmpty := false
				for c := node.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
						cell := webscrape.CleanText(nodeText(c))
						row = append(row, cell)
						if cell != "" {
							nonEmpty = true
						}
					}
				}
				if nonEmpty {
					table.Rows = append(table.Rows, row)
				}
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(n)

	if len(table.Rows) == 0 {
		return nil
	}
	return table
}

// nodeText returns the concatenated text of a subtree, skipping script and
// style content.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
			return
		}
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// resolveHref resolves href against base, returning "" when it cannot be
// parsed. With a nil base, absolute URLs pass through and relative ones are
// dropped.
func resolveHref(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
