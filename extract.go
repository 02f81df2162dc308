package webscrape

import "strings"

// Default traversal caps. They bound worst-case cost on pathological pages
// (see WalkOptions); callers can override each independently.
const (
	DefaultMaxTables    = 40
	DefaultMaxTableRows = 200
	DefaultMaxLinks     = 400
	DefaultMaxImages    = 100
)

// Link is an extracted anchor. Href is always absolute.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Image is an extracted image with an optional figure caption.
type Image struct {
	Alt     string `json:"alt"`
	Src     string `json:"src"`
	Caption string `json:"caption,omitempty"`
}

// Table holds one extracted table as trimmed, whitespace-collapsed cell
// rows. Every retained row has at least one non-empty cell.
type Table struct {
	Caption string     `json:"caption,omitempty"`
	Rows    [][]string `json:"rows"`
}

// Render formats the table as text: 2-column rows as "key: value",
// wider rows pipe-joined.
func (t *Table) Render() string {
	var b strings.Builder
	if t.Caption != "" {
		b.WriteString(t.Caption)
		b.WriteByte('\n')
	}
	for _, row := range t.Rows {
		if len(row) == 2 {
			b.WriteString(row[0] + ": " + row[1])
		} else {
			b.WriteString(strings.Join(row, " | "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ExtractResult is one page's structured snapshot. It is created fresh per
// extraction and never mutated after being returned. Only derivatives of it
// (capture text, fee lines) are persisted.
type ExtractResult struct {
	Title      string            `json:"title"`
	Headings   []string          `json:"headings"`   // "H{n}: text"
	Paragraphs []string          `json:"paragraphs"` // blockquotes prefixed "> "
	Lists      []string          `json:"lists"`      // bullet-prefixed items
	Tables     []Table           `json:"tables"`
	Links      []Link            `json:"links"`
	Images     []Image           `json:"images"`
	Meta       map[string]string `json:"meta"`
	RawLength  int               `json:"rawLength"` // sum of text lengths; completeness signal
}

// Lines flattens the textual categories into the ordered line form used for
// deduplication, capture bodies and chunking.
func (r *ExtractResult) Lines() []string {
	var lines []string
	if r.Title != "" {
		lines = append(lines, r.Title)
	}
	lines = append(lines, r.Headings...)
	lines = append(lines, r.Paragraphs...)
	lines = append(lines, r.Lists...)
	for i := range r.Tables {
		for _, l := range strings.Split(strings.TrimSpace(r.Tables[i].Render()), "\n") {
			if l != "" {
				lines = append(lines, l)
			}
		}
	}
	return lines
}

// Text renders the flattened result as newline-joined text.
func (r *ExtractResult) Text() string {
	return strings.Join(r.Lines(), "\n")
}

// WalkOptions configures a DOM walk.
type WalkOptions struct {
	// IncludeHidden includes elements that fail the visibility test.
	// Defaults to true in DefaultWalkOptions.
	IncludeHidden bool

	// ExcludeBoilerplate skips elements inside navigation/header/footer/ad
	// containers.
	ExcludeBoilerplate bool

	// Hard caps bounding traversal cost. Zero means the package default.
	MaxTables    int
	MaxTableRows int
	MaxLinks     int
	MaxImages    int
}

// DefaultWalkOptions returns the default walk configuration.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		IncludeHidden: true,
		MaxTables:     DefaultMaxTables,
		MaxTableRows:  DefaultMaxTableRows,
		MaxLinks:      DefaultMaxLinks,
		MaxImages:     DefaultMaxImages,
	}
}

// Walker produces a structured extraction result from an HTML document.
type Walker interface {
	// Walk traverses the document in a single pass, in document order.
	// The baseURL is used to resolve relative hrefs and image sources.
	// Per-node processing errors are recovered by skipping the node; the
	// walk never aborts on a per-node failure.
	Walk(html string, baseURL string, opts WalkOptions) (*ExtractResult, error)
}

// MainContent holds the output of a fallback content extractor.
type MainContent struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// removed.
	ContentHTML string
}

// ContentExtractor extracts main content from HTML, removing boilerplate.
// It backs the fallback chain used when selector scoring finds nothing.
type ContentExtractor interface {
	Extract(html string) (*MainContent, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., a selected main container).
	Convert(html string) (string, error)
}
