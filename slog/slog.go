// Package slog decorates pagedoc services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedoc"
)

var _ pagedoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   pagedoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagedoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

var _ pagedoc.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging.
type LoggingDocumentService struct {
	next   pagedoc.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next pagedoc.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) CreateDocument(ctx context.Context, title string) (doc *pagedoc.Document, err error) {
	defer func(begin time.Time) {
		var id string
		if doc != nil {
			id = doc.ID
		}
		s.logger.Info("create document",
			"title", title,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, title)
}

func (s *LoggingDocumentService) BatchUpdate(ctx context.Context, documentID string, ops []pagedoc.EditOperation) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("batch update",
			"id", documentID,
			"operations", len(ops),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BatchUpdate(ctx, documentID, ops)
}

var _ pagedoc.Webhook = (*LoggingWebhook)(nil)

// LoggingWebhook wraps a Webhook with logging.
type LoggingWebhook struct {
	next   pagedoc.Webhook
	logger *slog.Logger
}

// NewLoggingWebhook creates a new LoggingWebhook.
func NewLoggingWebhook(next pagedoc.Webhook, logger *slog.Logger) *LoggingWebhook {
	return &LoggingWebhook{next: next, logger: logger}
}

func (w *LoggingWebhook) Forward(ctx context.Context, pageURL string) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("forward",
			"url", pageURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Forward(ctx, pageURL)
}

var _ pagedoc.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   pagedoc.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pagedoc.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, siteURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("discover urls",
			"site", siteURL,
			"urls", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, siteURL)
}
