package webscrape_test

import (
	"testing"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/stretchr/testify/assert"
)

func TestIsPDFURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"plain pdf", "https://example.edu/fees/brochure.pdf", true},
		{"uppercase extension", "https://example.edu/FEES.PDF", true},
		{"query string after extension", "https://example.edu/fees.pdf?download=1", true},
		{"fragment after extension", "https://example.edu/fees.pdf#page=3", true},
		{"html page", "https://example.edu/fees", false},
		{"pdf in the middle of the path", "https://example.edu/fees.pdf/view", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, webscrape.IsPDFURL(tt.url))
		})
	}
}

func TestSplitPDFPages(t *testing.T) {
	t.Parallel()

	t.Run("splits on page markers", func(t *testing.T) {
		t.Parallel()

		text := "-- Page 1 --\nFee Structure 2026\n-- Page 2 --\nHostel Charges\n"

		pages := webscrape.SplitPDFPages(text)

		assert.Equal(t, []string{"Fee Structure 2026", "Hostel Charges"}, pages)
	})

	t.Run("drops empty pages", func(t *testing.T) {
		t.Parallel()

		text := "-- Page 1 --\n\n-- Page 2 --\nContent\n-- Page 3 --\n  \n"

		pages := webscrape.SplitPDFPages(text)

		assert.Equal(t, []string{"Content"}, pages)
	})

	t.Run("text without markers is one page", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"just text"}, webscrape.SplitPDFPages("just text"))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, webscrape.SplitPDFPages("  \n "))
	})
}
