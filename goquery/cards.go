package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	webscrape "github.com/codermillat/WebScrape-sub000"
	"golang.org/x/net/html"
)

// MaxFeeCardChars bounds the container size for the card-layout heuristic.
// Fee cards are small; anything larger is a section, not a card.
const MaxFeeCardChars = 300

var (
	// feeCardPeriodRe matches period vocabulary: an ordinal or counter
	// together with sem/semester/year.
	feeCardPeriodRe = regexp.MustCompile(`(?i)\b(\d{1,2}(st|nd|rd|th)?|first|second|third|fourth|fifth|sixth|seventh|eighth|per|each|annual)\b[^.]{0,40}\b(sem|semester|year|yr)s?\b`)

	// feeCardAmountRe matches currency or amount vocabulary.
	feeCardAmountRe = regexp.MustCompile(`(?i)[₹$€£]\s*[\d,.]+|\b(rs\.?|inr)\s*[\d,.]+|\b\d{1,3}(,\d{2,3})+\b|\bfees?\b`)

	// feeCardContainers are the elements considered as cards.
	feeCardContainers = "div, section, article, li, td, dl"
)

// ScanFeeCards detects non-table "card" fee layouts: small containers where
// period tokens and currency/amount tokens co-occur. Each matching card is
// grouped under the nearest preceding heading as the program name and
// emitted as a "program — card text" line. Lines are deduplicated in
// first-seen order.
//
// Like the table synthesizer this is a best-effort pattern match tuned
// against observed university sites, favoring precision: a container must
// carry both token classes to qualify.
func ScanFeeCards(rawHTML string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webscrape.Errorf(webscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	type card struct {
		node *html.Node
		line string
	}
	var cards []card

	doc.Find(feeCardContainers).Each(func(_ int, sel *goquery.Selection) {
		text := webscrape.CleanText(sel.Text())
		if text == "" || len(text) > MaxFeeCardChars {
			return
		}
		if !feeCardPeriodRe.MatchString(text) || !feeCardAmountRe.MatchString(text) {
			return
		}
		line := text
		if program := nearestHeading(sel.Nodes[0]); program != "" && !strings.Contains(text, program) {
			line = program + " — " + text
		}
		cards = append(cards, card{node: sel.Nodes[0], line: line})
	})

	// Nested containers match their parents too; keep only the innermost
	// card of each match chain.
	var lines []string
	seen := make(map[string]bool)
	for i, c := range cards {
		innermost := true
		for j, other := range cards {
			if i != j && contains(c.node, other.node) {
				innermost = false
				break
			}
		}
		if !innermost || seen[c.line] {
			continue
		}
		seen[c.line] = true
		lines = append(lines, c.line)
	}

	return lines, nil
}

// contains reports whether inner is a strict descendant of outer.
func contains(outer, inner *html.Node) bool {
	for p := inner.Parent; p != nil; p = p.Parent {
		if p == outer {
			return true
		}
	}
	return false
}

// nearestHeading finds the closest heading before the node in document
// order, checking preceding siblings at each ancestor level.
func nearestHeading(n *html.Node) string {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if h := lastHeadingIn(sib); h != "" {
				return h
			}
		}
	}
	return ""
}

// lastHeadingIn returns the text of the last heading inside the subtree,
// or the node's own text if it is a heading.
func lastHeadingIn(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}
	if isHeading(n.Data) {
		return webscrape.CleanText(nodeText(n))
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if h := lastHeadingIn(c); h != "" {
			return h
		}
	}
	return ""
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}
