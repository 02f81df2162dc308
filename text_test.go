package webscrape_test

import (
	"strings"
	"testing"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and collapses", "  B.Tech \t fees\n\n₹1,20,000  ", "B.Tech fees ₹1,20,000"},
		{"already clean", "Hostel fee", "Hostel fee"},
		{"empty", "   \n\t ", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, webscrape.CleanText(tt.in))
		})
	}
}

func TestNormalizeLine(t *testing.T) {
	t.Parallel()

	t.Run("punctuation and case variants share a key", func(t *testing.T) {
		t.Parallel()
		a := webscrape.NormalizeLine("B.Tech — ₹1,20,000/year")
		b := webscrape.NormalizeLine("b.tech ₹1,20,000 / YEAR!")
		assert.Equal(t, a, b)
	})

	t.Run("keeps currency symbols and digits", func(t *testing.T) {
		t.Parallel()
		got := webscrape.NormalizeLine("Tuition: $5,000 per year")
		assert.Contains(t, got, "$5")
		assert.Contains(t, got, "000")
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		once := webscrape.NormalizeLine("Hostel Fee — ₹60,000 (AC room)")
		assert.Equal(t, once, webscrape.NormalizeLine(once))
	})
}

func TestSignature(t *testing.T) {
	t.Parallel()

	t.Run("deterministic and content sensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, webscrape.Signature("fees"), webscrape.Signature("fees"))
		assert.NotEqual(t, webscrape.Signature("fees"), webscrape.Signature("fees "))
	})

	t.Run("hex encoded", func(t *testing.T) {
		t.Parallel()
		sig := webscrape.Signature("fees")
		assert.Len(t, sig, 16)
		assert.Equal(t, strings.ToLower(sig), sig)
	})
}

func TestStableSignature(t *testing.T) {
	t.Parallel()

	t.Run("ignores digit-only differences", func(t *testing.T) {
		t.Parallel()
		a := webscrape.StableSignature("Visitors: 10234\nFee Structure 2026")
		b := webscrape.StableSignature("Visitors: 10981\nFee Structure 2026")
		assert.Equal(t, a, b)
	})

	t.Run("still distinguishes different text", func(t *testing.T) {
		t.Parallel()
		a := webscrape.StableSignature("Fee Structure")
		b := webscrape.StableSignature("Admission Process")
		assert.NotEqual(t, a, b)
	})

	t.Run("differences beyond the prefix are invisible", func(t *testing.T) {
		t.Parallel()
		base := strings.Repeat("a", 3000)
		assert.Equal(t, webscrape.StableSignature(base+"x"), webscrape.StableSignature(base+"y"))
	})
}

func TestCheapSignature(t *testing.T) {
	t.Parallel()

	t.Run("encodes prefix and length", func(t *testing.T) {
		t.Parallel()
		a := webscrape.CheapSignature("short page body")
		b := webscrape.CheapSignature("short page body")
		assert.Equal(t, a, b)
		assert.True(t, strings.HasPrefix(a, "short page body:"))
	})

	t.Run("length changes the fingerprint even with a shared prefix", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("b", 200)
		assert.NotEqual(t, webscrape.CheapSignature(long), webscrape.CheapSignature(long+"tail"))
	})
}
