package webscrape_test

import (
	"strings"
	"testing"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePageKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"drops www and trailing slash", "https://www.Example.edu/fees/", "example.edu/fees"},
		{"drops query and fragment", "https://example.edu/fees?tab=2#hostel", "example.edu/fees"},
		{"bare host", "https://example.edu", "example.edu"},
		{"re-captures group together", "https://example.edu/fees", "example.edu/fees"},
		{"invalid url falls back to the raw string", "not a url/", "not a url"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, webscrape.NormalizePageKey(tt.in))
		})
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	t.Run("short text passes through cleaned", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "B.Tech fees", webscrape.Preview("  B.Tech\n\nfees  "))
	})

	t.Run("long text truncates at the preview bound", func(t *testing.T) {
		t.Parallel()
		got := webscrape.Preview(strings.Repeat("a", 500))
		assert.Len(t, []rune(got), webscrape.PreviewLength)
	})

	t.Run("truncation is rune safe", func(t *testing.T) {
		t.Parallel()
		got := webscrape.Preview(strings.Repeat("₹", 500))
		assert.Len(t, []rune(got), webscrape.PreviewLength)
		assert.True(t, strings.HasSuffix(got, "₹"))
	})
}

func TestCapture_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		c := &webscrape.Capture{PageKey: "example.edu/fees", Sig: "abc"}
		require.NoError(t, c.Validate())
	})

	t.Run("missing page key", func(t *testing.T) {
		t.Parallel()
		c := &webscrape.Capture{Sig: "abc"}
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, webscrape.EINVALID, webscrape.ErrorCode(err))
	})

	t.Run("missing signature", func(t *testing.T) {
		t.Parallel()
		c := &webscrape.Capture{PageKey: "example.edu/fees"}
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, webscrape.EINVALID, webscrape.ErrorCode(err))
	})
}
