package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/mock"
	pdslog "github.com/fwojciec/pagedoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	pages := map[string]string{"https://example.com/page": "<p>Hello</p>"}
	inner := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if html, ok := pages[url]; ok {
				return html, nil
			}
			return "", pagedoc.Errorf(pagedoc.ENOTFOUND, "HTTP 404 for %s", url)
		},
		CloseFn: func() error { return errors.New("already closed") },
	}

	tests := []struct {
		name string
		url  string
		want []string
	}{
		{"logs page size", "https://example.com/page", []string{"msg=fetch", "url=https://example.com/page", "bytes=12", "duration="}},
		{"logs missing page", "https://example.com/gone", []string{"bytes=0", `err="HTTP 404 for https://example.com/gone"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			fetcher := pdslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil)))

			html, err := fetcher.Fetch(context.Background(), tt.url)

			assert.Equal(t, pages[tt.url], html)
			assert.Equal(t, pages[tt.url] == "", err != nil)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	t.Run("close passes through without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := pdslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		require.EqualError(t, fetcher.Close(), "already closed")
		assert.Empty(t, buf.String())
	})
}

func TestLoggingDocumentService(t *testing.T) {
	t.Parallel()

	t.Run("logs created document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, title string) (*pagedoc.Document, error) {
				return &pagedoc.Document{ID: "doc-1", Title: title}, nil
			},
		}

		svc := pdslog.NewLoggingDocumentService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		doc, err := svc.CreateDocument(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
		output := buf.String()
		assert.Contains(t, output, `msg="create document"`)
		assert.Contains(t, output, "title=example.com")
		assert.Contains(t, output, "id=doc-1")
	})

	t.Run("logs failed creation without id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			CreateDocumentFn: func(context.Context, string) (*pagedoc.Document, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		svc := pdslog.NewLoggingDocumentService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := svc.CreateDocument(context.Background(), "example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
		assert.Contains(t, buf.String(), "id=\"\"")
	})

	t.Run("logs batch size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			BatchUpdateFn: func(context.Context, string, []pagedoc.EditOperation) error { return nil },
		}
		ops := pagedoc.BuildRequests([]pagedoc.ContentElement{
			{Kind: pagedoc.KindHeading2, Text: "a"},
			{Kind: pagedoc.KindParagraph, Text: "b"},
		})

		svc := pdslog.NewLoggingDocumentService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := svc.BatchUpdate(context.Background(), "doc-1", ops)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="batch update"`)
		assert.Contains(t, output, "id=doc-1")
		assert.Contains(t, output, "operations=3")
		assert.Contains(t, output, "duration=")
	})
}

func TestLoggingWebhook_Forward(t *testing.T) {
	t.Parallel()

	t.Run("logs forwarded URL", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var got string
		inner := &mock.Webhook{ForwardFn: func(_ context.Context, pageURL string) error {
			got = pageURL
			return nil
		}}

		hook := pdslog.NewLoggingWebhook(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := hook.Forward(context.Background(), "https://example.com/page")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/page", got)
		assert.Contains(t, buf.String(), "msg=forward")
		assert.Contains(t, buf.String(), "url=https://example.com/page")
	})

	t.Run("logs and returns error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Webhook{ForwardFn: func(context.Context, string) error {
			return errors.New("webhook returned HTTP 500")
		}}

		hook := pdslog.NewLoggingWebhook(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := hook.Forward(context.Background(), "https://example.com/page")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="webhook returned HTTP 500"`)
	})
}

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs number of discovered URLs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string) ([]string, error) {
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}

		svc := pdslog.NewLoggingSitemapService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, `msg="discover urls"`)
		assert.Contains(t, output, "site=https://example.com/docs")
		assert.Contains(t, output, "urls=2")
	})

	t.Run("logs and returns error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string) ([]string, error) {
				return nil, errors.New("no sitemap")
			},
		}

		svc := pdslog.NewLoggingSitemapService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := svc.DiscoverURLs(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="no sitemap"`)
	})
}
