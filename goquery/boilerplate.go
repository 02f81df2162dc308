package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	webscrape "github.com/codermillat/WebScrape-sub000"
	"golang.org/x/net/html"
)

// Scoring and positional-filter tuning. Named so site-specific adjustments
// don't require touching the selection logic.
const (
	// BoilerplatePenalty is subtracted from a candidate's score per nested
	// boilerplate element. Penalizing by count rather than excluding the
	// whole candidate lets a content-rich container win even when a small
	// nav fragment is nested inside it.
	BoilerplatePenalty = 200
)

// mainCandidateSelectors is the priority list of semantic selectors used to
// gather main-content candidates.
var mainCandidateSelectors = []string{
	"main",
	"[role=main]",
	"article",
	"#content",
	".content",
	"#primary",
	".site-content",
	".container",
}

// boilerplateTags are structural elements always treated as boilerplate.
var boilerplateTags = map[string]bool{
	"header": true,
	"nav":    true,
	"footer": true,
	"aside":  true,
}

// boilerplateRoles are landmark roles treated as boilerplate.
var boilerplateRoles = map[string]bool{
	"navigation":  true,
	"banner":      true,
	"contentinfo": true,
}

// boilerplateHints are class/id substrings that mark page furniture.
var boilerplateHints = []string{
	"nav", "menu", "footer", "sidebar", "breadcrumb", "cookie",
}

// boilerplateAdTokens match ad containers by class/id token. Token matching
// avoids flagging words that merely contain "ad" (e.g. "heading").
var boilerplateAdTokens = map[string]bool{
	"ad": true, "ads": true, "advert": true, "advertisement": true,
	"adsense": true, "banner-ad": true, "ad-slot": true,
}

// IsBoilerplateNode reports whether the element itself is boilerplate:
// structural tag, landmark role, or class/id heuristics.
func IsBoilerplateNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if boilerplateTags[n.Data] {
		return true
	}
	if boilerplateRoles[strings.ToLower(attrValue(n, "role"))] {
		return true
	}
	classID := strings.ToLower(attrValue(n, "class") + " " + attrValue(n, "id"))
	for _, hint := range boilerplateHints {
		if strings.Contains(classID, hint) {
			return true
		}
	}
	for _, token := range strings.FieldsFunc(classID, func(r rune) bool {
		return r == ' ' || r == '_'
	}) {
		if boilerplateAdTokens[token] {
			return true
		}
	}
	return false
}

// HasBoilerplateAncestor reports whether the element or any ancestor is
// boilerplate.
func HasBoilerplateAncestor(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if IsBoilerplateNode(n) {
			return true
		}
	}
	return false
}

// nodeVisible is the static-HTML visibility approximation: elements are
// visible unless hidden via attribute or inline style. Rendered bounding
// boxes are only available to the live-page sweeper, which uses
// webscrape.NodeStyle for the full test.
func nodeVisible(n *html.Node) bool {
	if attrValue(n, "hidden") != "" || strings.EqualFold(attrValue(n, "aria-hidden"), "true") {
		return false
	}
	style := strings.ToLower(strings.ReplaceAll(attrValue(n, "style"), " ", ""))
	if strings.Contains(style, "display:none") ||
		strings.Contains(style, "visibility:hidden") ||
		strings.Contains(style, "opacity:0;") ||
		strings.HasSuffix(style, "opacity:0") {
		return false
	}
	return true
}

// SelectMainContainer picks the best main-content container from the
// candidate selector list. Each candidate scores
// textLength − BoilerplatePenalty × nestedBoilerplateCount; the highest
// scorer wins and the document body is the fallback. Selector priority
// breaks score ties, so a qualifying <main> still beats an equally scored
// generic container.
func SelectMainContainer(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestScore := -1 << 62

	for _, selector := range mainCandidateSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			score := scoreCandidate(sel)
			if score > bestScore {
				bestScore = score
				best = sel
			}
		})
	}

	if best != nil {
		return best
	}
	return doc.Find("body").First()
}

// scoreCandidate computes textLength − penalty×boilerplateCount for one
// candidate container.
func scoreCandidate(sel *goquery.Selection) int {
	textLen := len(webscrape.CleanText(sel.Text()))
	count := 0
	for _, n := range sel.Nodes {
		count += countBoilerplate(n, false)
	}
	return textLen - BoilerplatePenalty*count
}

// countBoilerplate counts boilerplate elements strictly inside the subtree.
func countBoilerplate(n *html.Node, includeSelf bool) int {
	count := 0
	if includeSelf && IsBoilerplateNode(n) {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count += countBoilerplate(c, true)
		}
	}
	return count
}
