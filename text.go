package webscrape

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// stablePrefixLen bounds the portion of text hashed by StableSignature.
// Near-duplicate captures differ mostly in embedded counters or timestamps,
// so a digit-normalized prefix is enough to catch them.
const stablePrefixLen = 2000

// cheapPrefixLen bounds the prefix used by CheapSignature.
const cheapPrefixLen = 120

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	digitRunRe   = regexp.MustCompile(`\d+`)
)

// CleanText trims a string and collapses internal whitespace runs
// (including newlines and tabs) into single spaces.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NormalizeLine converts a line into its deduplication key: lowercase, with
// every character except letters, digits, currency symbols, dot, hyphen and
// space removed, and whitespace collapsed. Lines differing only in
// punctuation or case normalize to the same key. NormalizeLine is
// idempotent.
func NormalizeLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.Is(unicode.Sc, r): // currency symbols
			b.WriteRune(r)
		case r == '.' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return CleanText(b.String())
}

// Signature returns the hex-encoded xxHash of content. It identifies exact
// duplicates without storing full text.
func Signature(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return hex.EncodeToString(b)
}

// StableSignature returns a signature that is insensitive to embedded
// numbers: digit runs in a bounded prefix of the text are collapsed to "0"
// before hashing. Two captures of a page whose only difference is a visit
// counter or timestamp share the same stable signature.
func StableSignature(content string) string {
	prefix := content
	if len(prefix) > stablePrefixLen {
		prefix = prefix[:stablePrefixLen]
	}
	return Signature(digitRunRe.ReplaceAllString(prefix, "0"))
}

// CheapSignature returns a length-plus-prefix fingerprint used where full
// hashing is not worth the cost, such as deduplicating fetched HTML pages
// during a link sweep. It trades a small false-negative rate for speed.
func CheapSignature(content string) string {
	cleaned := CleanText(content)
	prefix := cleaned
	if len(prefix) > cheapPrefixLen {
		prefix = prefix[:cheapPrefixLen]
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(hex.EncodeToString([]byte{
		byte(len(cleaned) >> 16), byte(len(cleaned) >> 8), byte(len(cleaned)),
	}))
	return b.String()
}
