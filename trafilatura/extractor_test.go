package trafilatura_test

import (
	"testing"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements webscrape.ContentExtractor at compile time.
var _ webscrape.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Fee Structure - Example University</title>
<meta property="og:title" content="Fee Structure 2026">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Fee Structure</h1>
<p>Tuition and hostel fees for all undergraduate programmes.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Admissions</title></head>
<body>
<nav><a href="/">Home</a><a href="/fees">Fees</a></nav>
<article>
<h1>Admissions 2026</h1>
<p>Applications open in January. The tuition fee for B.Tech CSE is 280000 per year.</p>
<p>Hostel accommodation is optional and billed per semester.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "tuition fee for B.Tech CSE")
		assert.Contains(t, result.ContentHTML, "billed per semester")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Scholarships</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/about">About</a></li>
<li><a href="/admissions">Admissions</a></li>
</ul>
</nav>
<main>
<h1>Merit Scholarships</h1>
<p>Students scoring above 90 percent receive a 50 percent tuition waiver.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "tuition waiver")
		assert.NotContains(t, result.ContentHTML, "main-nav")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Hostel</title></head>
<body>
<article>
<h1>Hostel Facilities</h1>
<p>Air-conditioned rooms are available for 120000 per year including mess charges.</p>
</article>
<footer>
<p>Copyright 2026 Example University</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "mess charges")
		assert.NotContains(t, result.ContentHTML, "Copyright 2026 Example University")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})
}
