package webscrape

import (
	"regexp"
	"strings"
)

// Fee lexicons. The table gate is deliberately wider than the line gate:
// a table qualifies if its header or caption mentions fee/program vocabulary,
// but an individual row is only emitted if it carries fee vocabulary itself.
// The two-stage filter favors precision over recall, since downstream
// consumers assume anything tagged as a fee line is semantically correct.
var (
	// FeeTableGateRe matches table headers/captions that indicate a
	// fee/program schedule.
	FeeTableGateRe = regexp.MustCompile(`(?i)\b(fees?|semester|sem|year|tuition|amount|annual|programme|program|course)\b`)

	// FeeLineGateRe matches individual rows that carry fee content.
	FeeLineGateRe = regexp.MustCompile(`(?i)(\bfees?\b|[₹$€£]|\brs\.?\b|\binr\b|\bamount\b|\bsemester\b|\bsem\b|\byear\b)`)
)

// FeeSynthesis holds normalized "program — fee" lines synthesized from
// extracted tables, together with the source tables. It is built fresh per
// extraction and never mutated after creation.
type FeeSynthesis struct {
	Lines  []string `json:"lines"`
	Tables []Table  `json:"tables"`
}

// BuildFeeSynthesis inspects extracted tables and emits normalized fee
// lines. A table is considered only if its first row (treated as the
// header) or its caption passes the table gate; a row from a qualifying
// table is emitted only if it additionally passes the line gate.
// Two-column rows render as "{cell0} — {cell1}", wider rows pipe-joined.
// Lines are deduplicated by exact match, preserving first-seen order.
func BuildFeeSynthesis(tables []Table) *FeeSynthesis {
	syn := &FeeSynthesis{Tables: tables}
	seen := make(map[string]bool)

	for _, table := range tables {
		if len(table.Rows) == 0 {
			continue
		}
		header := strings.Join(table.Rows[0], " ")
		if !FeeTableGateRe.MatchString(header) && !FeeTableGateRe.MatchString(table.Caption) {
			continue
		}

		// The header row gates the table; only the remaining rows are
		// candidate fee lines.
		for _, row := range table.Rows[1:] {
			var line string
			if len(row) == 2 {
				line = row[0] + " — " + row[1]
			} else {
				line = strings.Join(row, " | ")
			}
			if !FeeLineGateRe.MatchString(line) {
				continue
			}
			if seen[line] {
				continue
			}
			seen[line] = true
			syn.Lines = append(syn.Lines, line)
		}
	}

	return syn
}
