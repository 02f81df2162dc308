package webscrape

import "strings"

// Default chunking bounds in bytes.
const (
	DefaultMaxChunkSize = 6000
	DefaultMinChunkSize = 1200
)

// ChunkOptions configures ChunkText. Zero values mean the package defaults.
type ChunkOptions struct {
	// MaxChunkSize is the soft upper bound on chunk length. Chunks never
	// split mid-line, so a chunk may exceed the bound by at most one line.
	MaxChunkSize int

	// MinChunkSize is the threshold below which a forced-out chunk is
	// merged into the previous chunk instead of emitted standalone.
	MinChunkSize int
}

// ChunkText splits content into size-bounded segments on line boundaries.
// Lines accumulate into a chunk until adding the next line would exceed
// MaxChunkSize. A chunk forced out while smaller than MinChunkSize is
// merged into the previous chunk, avoiding tiny trailing fragments. Empty
// lines are dropped; all non-empty lines appear in order across the
// returned chunks.
func ChunkText(content string, opts ChunkOptions) []string {
	maxSize := opts.MaxChunkSize
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}
	minSize := opts.MinChunkSize
	if minSize <= 0 {
		minSize = DefaultMinChunkSize
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if current.Len() < minSize && len(chunks) > 0 {
			chunks[len(chunks)-1] += "\n" + current.String()
		} else {
			chunks = append(chunks, current.String())
		}
		current.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+1+len(line) > maxSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}

// PromptSections is the closed, ordered section list used by
// BuildStructuredPrompt.
var PromptSections = []string{
	"RANKING",
	"COURSES",
	"FEES",
	"ELIGIBILITY",
	"ADMISSION PROCESS",
	"SCHOLARSHIPS",
	"PAYMENTS",
	"VISA/FRRO",
	"CONTACT",
	"NOTES",
}

// BuildStructuredPrompt wraps one chunk of extracted content in the fixed
// structuring template for later, external LLM consumption. It is a
// text-shaping utility only; it never issues network calls.
func BuildStructuredPrompt(title, url, content string) string {
	var b strings.Builder
	b.WriteString("Organize the following extracted web page content into exactly these sections, in this order:\n")
	for _, s := range PromptSections {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteByte('\n')
	}
	b.WriteString("\nRules: use only information present in the content; do not fabricate or infer missing facts; ")
	b.WriteString("write \"N/A\" for sections with no supporting content; preserve amounts and program names verbatim.\n\n")
	if title != "" {
		b.WriteString("Page title: ")
		b.WriteString(title)
		b.WriteByte('\n')
	}
	b.WriteString("\nContent:\n")
	b.WriteString(content)
	if !strings.Contains(content, "Source: ") {
		b.WriteString("\n\nSource: ")
		b.WriteString(url)
	}
	b.WriteByte('\n')
	return b.String()
}
