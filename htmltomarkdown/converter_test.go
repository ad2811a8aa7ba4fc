package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/goquery"
	"github.com/fwojciec/pagedoc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("renders the block types that get published", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><h2>Sub</h2><p>Body text</p><ul><li>First</li><li>Second</li></ul>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Sub")
		assert.Contains(t, md, "Body text")
		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "- Second")
	})

	t.Run("keeps content the extractor drops", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li>Step one</li></ol>
<table><thead><tr><th>Name</th></tr></thead><tbody><tr><td>Alice</td></tr></tbody></table>
<pre><code class="language-go">package main</code></pre>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "1. Step one")
		assert.Contains(t, md, "Alice")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "```go")
		assert.Empty(t, goquery.NewContentExtractor().Extract(html))
	})

	t.Run("converts links and emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="https://example.com">Example</a>, <strong>bold</strong> and <em>italic</em>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
		assert.Contains(t, md, "**bold**")
		assert.Contains(t, md, "*italic*")
	})

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<p><a href="../install">Install</a> and <a href="https://other.example/x">elsewhere</a></p>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "https://example.com/docs/guide/intro")

		require.NoError(t, err)
		assert.Contains(t, md, "[Install](https://example.com/docs/install)")
		assert.Contains(t, md, "[elsewhere](https://other.example/x)")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("\n\n<p>Hello</p>\n\n", "")

		require.NoError(t, err)
		assert.Equal(t, "Hello", md)
	})

	t.Run("returns EINVALID for blank input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ", "")

		assert.Equal(t, pagedoc.EINVALID, pagedoc.ErrorCode(err))
	})
}
