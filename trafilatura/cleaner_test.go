package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/goquery"
	"github.com/fwojciec/pagedoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Release Notes</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home Nav Link</a></li>
<li><a href="/about">About Nav Link</a></li>
</ul>
</nav>
<article>
<h1>Release Notes</h1>
<p>This release focuses on stability and includes a number of important fixes for long running jobs.</p>
<p>Upgrading is recommended for everyone running the previous version in production environments.</p>
</article>
<footer><p>Copyright 2024 Example Corp</p></footer>
</body>
</html>`

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("blank input is invalid", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "  \n\t"} {
			_, err := trafilatura.NewCleaner().Clean(in)
			assert.Equal(t, pagedoc.EINVALID, pagedoc.ErrorCode(err), "input %q", in)
		}
	})

	t.Run("keeps main article content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewCleaner().Clean(articlePage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "focuses on stability")
		assert.Equal(t, "Release Notes", result.Title)
	})

	t.Run("removes navigation and footer", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewCleaner().Clean(articlePage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Example Corp")
	})

	t.Run("cleaned content keeps each block separate", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewCleaner().Clean(articlePage)
		require.NoError(t, err)

		elements := goquery.NewContentExtractor().Extract(result.ContentHTML)

		assert.Equal(t, []pagedoc.ContentElement{
			{Kind: pagedoc.KindHeading1, Text: "Release Notes"},
			{Kind: pagedoc.KindParagraph, Text: "This release focuses on stability and includes a number of important fixes for long running jobs."},
			{Kind: pagedoc.KindParagraph, Text: "Upgrading is recommended for everyone running the previous version in production environments."},
		}, elements)
	})

	t.Run("keeps lists from the article", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>Changes</title></head><body>
<nav><ul><li><a href="/">Home</a></li><li><a href="/docs">Docs</a></li></ul></nav>
<article>
<h2>Changes in this release</h2>
<p>The following problems were fixed after reports from several users running long jobs in production.</p>
<ul>
<li>Workers no longer stall when the queue is drained during a deploy.</li>
<li>Retries now back off instead of hammering the upstream service.</li>
</ul>
<p>Thanks to everyone who reported these problems and helped verify the fixes before the release.</p>
</article>
<footer><p>Copyright 2024 Example Corp</p></footer>
</body></html>`

		result, err := trafilatura.NewCleaner().Clean(page)
		require.NoError(t, err)

		elements := goquery.NewContentExtractor().Extract(result.ContentHTML)

		var kinds []pagedoc.ElementKind
		for _, el := range elements {
			kinds = append(kinds, el.Kind)
			assert.NotEqual(t, "Home", el.Text)
		}
		assert.Contains(t, kinds, pagedoc.KindHeading2)
		assert.Contains(t, kinds, pagedoc.KindListItem)
		assert.GreaterOrEqual(t, len(elements), 4)
	})
}
