// Package pipeline orchestrates a full page extraction: allowlist check,
// fetch, walk, fee synthesis, optional link and dynamic sweeps, line
// deduplication and capture storage.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// CardScanner finds fee lines in non-table card layouts.
type CardScanner func(html string) ([]string, error)

// Pipeline coordinates the extraction of one page.
type Pipeline struct {
	Allowlist *webscrape.Allowlist
	Fetcher   webscrape.Fetcher
	Browser   webscrape.Fetcher // optional fallback when static HTML yields nothing
	Walker    webscrape.Walker
	Fallbacks []webscrape.ContentExtractor
	Cards     CardScanner
	Links     webscrape.LinkSweeper
	Sweeper   webscrape.Sweeper
	Memory    webscrape.LineMemory
	Converter webscrape.Converter // optional markdown rendering for llm capture bodies
	PDF       webscrape.PDFExtractor
	Logger    *slog.Logger

	// RetryDelays are the backoff delays between fetch attempts.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration
}

// ExtractRequest asks for one page extraction.
type ExtractRequest struct {
	Action   string `json:"action"` // always "pipelineExtract"
	URL      string `json:"url"`
	Extended bool   `json:"extended,omitempty"` // fetch-based pagination/tab sweep
	Dynamic  bool   `json:"dynamic,omitempty"`  // click-based live-page sweep
}

// ExtractMeta summarizes an extraction.
type ExtractMeta struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	Length          int    `json:"length"`
	Tables          int    `json:"tables"`
	FeeLines        int    `json:"feeLines"`
	Extended        bool   `json:"extended"`
	ExtraPagesCount int    `json:"extraPagesCount"`
}

// ExtractBody groups the textual extraction outputs.
type ExtractBody struct {
	Base             string   `json:"base"`
	Fees             []string `json:"fees"`
	ExtraPagesMerged []string `json:"extraPagesMerged"`
}

// ExtractResponse is the reply to an ExtractRequest.
type ExtractResponse struct {
	OK                      bool         `json:"ok"`
	Meta                    *ExtractMeta `json:"meta,omitempty"`
	Extract                 *ExtractBody `json:"extract,omitempty"`
	StructuredCandidate     string       `json:"structuredCandidate,omitempty"`
	ChunkPromptsPreview     []string     `json:"chunkPromptsPreview,omitempty"`
	StructuredPromptExample string       `json:"structuredPromptExample,omitempty"`
	Error                   string       `json:"error,omitempty"`

	// LLMBody is the markdown rendering of the walked content, for storage
	// as a capture's llm-kind body. It never crosses the message boundary.
	LLMBody string `json:"-"`
}

// chunkPromptsPreviewLimit caps the prompts included in a response preview.
const chunkPromptsPreviewLimit = 3

// Extract runs the pipeline for one URL. The allowlist is checked before
// any fetch or DOM work. Sweep and fallback failures degrade to a partial
// result; only a total extraction failure is an error.
func (p *Pipeline) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	if !p.Allowlist.AllowsURL(req.URL) {
		return nil, webscrape.Errorf(webscrape.EFORBIDDEN, "domain not allowlisted: %s", req.URL)
	}

	if webscrape.IsPDFURL(req.URL) {
		return p.extractPDF(ctx, req)
	}

	html, err := p.fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	result, walkedHTML, err := p.walkWithFallbacks(ctx, html, req.URL)
	if err != nil {
		return nil, err
	}

	fees := webscrape.BuildFeeSynthesis(result.Tables)
	feeLines := fees.Lines
	if p.Cards != nil {
		cardLines, err := p.Cards(html)
		if err == nil {
			feeLines = mergeLines(feeLines, cardLines)
		}
	}

	var extraMerged []string
	extraPages := 0
	if req.Extended && p.Links != nil {
		bodies, err := p.Links.SweepExtended(ctx, html, req.URL)
		if err != nil {
			p.logger().Debug("link sweep failed", "url", req.URL, "err", err)
		} else {
			extraPages = len(bodies)
			for _, body := range bodies {
				extra, err := p.Walker.Walk(body, req.URL, webscrape.DefaultWalkOptions())
				if err != nil {
					continue
				}
				extraMerged = mergeLines(extraMerged, extra.Lines())
			}
		}
	}

	if req.Dynamic && p.Sweeper != nil {
		swept, err := p.Sweeper.Sweep(ctx, req.URL, webscrape.SweepConfig{})
		if err != nil {
			p.logger().Debug("dynamic sweep failed", "url", req.URL, "err", err)
		} else {
			extraMerged = mergeLines(extraMerged, swept.Lines)
		}
	}

	resp := p.respond(req, result.Title, result.Lines(), feeLines, extraMerged, len(result.Tables), extraPages)
	if p.Converter != nil {
		if md, err := p.Converter.Convert(walkedHTML); err == nil {
			resp.LLMBody = md
		}
	}
	return resp, nil
}

// extractPDF delegates to the PDF boundary and shapes its page-delimited
// text into a response.
func (p *Pipeline) extractPDF(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	if p.PDF == nil {
		return nil, webscrape.Errorf(webscrape.EUNAVAILABLE, "pdf extraction not configured")
	}
	resp, err := p.PDF.ExtractPDFText(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, webscrape.Errorf(webscrape.EINTERNAL, "pdf extraction failed: %s", resp.Error)
	}

	var lines []string
	for _, page := range webscrape.SplitPDFPages(resp.Text) {
		for _, line := range strings.Split(page, "\n") {
			if line = webscrape.CleanText(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return nil, webscrape.Errorf(webscrape.ENOTFOUND, "no text extracted from %s", req.URL)
	}

	return p.respond(req, "", lines, nil, nil, 0, 0), nil
}

// respond assembles the response, running new lines through the line
// memory so repeat extractions shrink to their novel content.
func (p *Pipeline) respond(req ExtractRequest, title string, base, feeLines, extraMerged []string, tables, extraPages int) *ExtractResponse {
	extraMerged = subtractLines(extraMerged, base)
	if p.Memory != nil {
		p.Memory.RememberLines(base)
		extraMerged = rememberNovel(p.Memory, extraMerged)
	}

	candidate := buildCandidate(base, feeLines, extraMerged)
	chunks := webscrape.ChunkText(candidate, webscrape.ChunkOptions{})

	preview := make([]string, 0, chunkPromptsPreviewLimit)
	for _, chunk := range chunks {
		if len(preview) == chunkPromptsPreviewLimit {
			break
		}
		preview = append(preview, webscrape.BuildStructuredPrompt(title, req.URL, chunk))
	}
	example := ""
	if len(chunks) > 0 {
		example = webscrape.BuildStructuredPrompt(title, req.URL, chunks[0])
	}

	return &ExtractResponse{
		OK: true,
		Meta: &ExtractMeta{
			URL:             req.URL,
			Title:           title,
			Length:          len(candidate),
			Tables:          tables,
			FeeLines:        len(feeLines),
			Extended:        req.Extended,
			ExtraPagesCount: extraPages,
		},
		Extract: &ExtractBody{
			Base:             strings.Join(base, "\n"),
			Fees:             feeLines,
			ExtraPagesMerged: extraMerged,
		},
		StructuredCandidate:     candidate,
		ChunkPromptsPreview:     preview,
		StructuredPromptExample: example,
	}
}

// fetch retrieves the page with retry backoff.
func (p *Pipeline) fetch(ctx context.Context, url string) (string, error) {
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logf := func(format string, args ...any) {
		p.logger().Debug(fmt.Sprintf(format, args...))
	}
	return FetchWithRetryDelays(ctx, url, p.Fetcher.Fetch, logf, delays)
}

// walkWithFallbacks walks the fetched HTML; if that yields no content it
// tries each fallback extractor's cleaned HTML, then a browser fetch. It
// returns the result together with the HTML that was actually walked.
func (p *Pipeline) walkWithFallbacks(ctx context.Context, html, url string) (*webscrape.ExtractResult, string, error) {
	result, err := p.Walker.Walk(html, url, webscrape.DefaultWalkOptions())
	if err == nil && result.RawLength > 0 {
		return result, html, nil
	}

	for _, fb := range p.Fallbacks {
		content, err := fb.Extract(html)
		if err != nil || content.ContentHTML == "" {
			continue
		}
		result, err := p.Walker.Walk(content.ContentHTML, url, webscrape.DefaultWalkOptions())
		if err != nil || result.RawLength == 0 {
			continue
		}
		if result.Title == "" {
			result.Title = content.Title
		}
		return result, content.ContentHTML, nil
	}

	if p.Browser != nil {
		rendered, err := p.Browser.Fetch(ctx, url)
		if err == nil {
			result, err := p.Walker.Walk(rendered, url, webscrape.DefaultWalkOptions())
			if err == nil && result.RawLength > 0 {
				return result, rendered, nil
			}
		}
	}

	return nil, "", webscrape.Errorf(webscrape.ENOTFOUND, "no content found at %s", url)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// buildCandidate assembles the structured text candidate: base lines
// (which begin with the page title), a FEES section when fee lines exist,
// then merged extra-page lines.
func buildCandidate(base, feeLines, extraMerged []string) string {
	var b strings.Builder
	for _, line := range base {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(feeLines) > 0 {
		b.WriteString("\nFEES\n")
		for _, line := range feeLines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if len(extraMerged) > 0 {
		b.WriteByte('\n')
		for _, line := range extraMerged {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

// mergeLines appends src lines absent from dst, comparing normalized
// forms, preserving first-seen order.
func mergeLines(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, line := range dst {
		seen[webscrape.NormalizeLine(line)] = true
	}
	for _, line := range src {
		key := webscrape.NormalizeLine(line)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		dst = append(dst, line)
	}
	return dst
}

// subtractLines drops lines whose normalized form appears in the base set.
func subtractLines(lines, base []string) []string {
	onPage := make(map[string]bool, len(base))
	for _, line := range base {
		onPage[webscrape.NormalizeLine(line)] = true
	}
	var out []string
	for _, line := range lines {
		key := webscrape.NormalizeLine(line)
		if key == "" || onPage[key] {
			continue
		}
		out = append(out, line)
	}
	return out
}

// rememberNovel records extra lines in the line memory, keeping only the
// ones not seen in earlier sessions.
func rememberNovel(memory webscrape.LineMemory, lines []string) []string {
	var out []string
	for _, line := range lines {
		if memory.RememberLine(webscrape.NormalizeLine(line), true) {
			out = append(out, line)
		}
	}
	return out
}
