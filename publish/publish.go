// Package publish turns web pages into Google Docs documents. It fetches
// each page, extracts its content elements, builds the edit operations and
// submits them to the document service, one URL at a time.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagedoc"
)

// Publisher orchestrates publishing pages into documents.
//
// Fetcher, Extractor and Documents are required. Cleaner, Publications and
// RateLimiter are optional.
type Publisher struct {
	Fetcher      pagedoc.Fetcher
	Cleaner      pagedoc.Cleaner
	Extractor    pagedoc.ContentExtractor
	Documents    pagedoc.DocumentService
	Publications pagedoc.PublicationService
	RateLimiter  pagedoc.DomainLimiter

	// RetryDelays are the waits between page fetch attempts.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logf, if set, receives a line for every fetch retry.
	Logf LogFunc

	// KeepGoing reports a failing URL and moves on to the next one instead
	// of aborting the run.
	KeepGoing bool

	// SkipUnchanged leaves a page alone when its content hash matches the
	// latest recorded publication. Requires Publications.
	SkipUnchanged bool
}

// Result holds the outcome of a PublishAll run.
type Result struct {
	Published    int
	Skipped      int
	Failed       int
	Publications []*pagedoc.Publication
}

// ProgressEvent reports progress during a PublishAll run.
type ProgressEvent struct {
	Type        ProgressType
	Completed   int
	Total       int
	URL         string
	Publication *pagedoc.Publication
	Error       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPublished
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting publish progress.
type ProgressFunc func(event ProgressEvent)

// PublishAll publishes urls sequentially, in order.
//
// Without KeepGoing the first failure stops the run and is returned along
// with the partial result. With KeepGoing failures are reported through
// progress, counted in Result.Failed, and the run continues.
func (p *Publisher) PublishAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	emit := func(ev ProgressEvent) {
		if progress != nil {
			ev.Total = len(urls)
			progress(ev)
		}
	}

	result := &Result{}
	emit(ProgressEvent{Type: ProgressStarted})

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		pub, skipped, err := p.publish(ctx, u)
		switch {
		case err != nil:
			result.Failed++
			emit(ProgressEvent{Type: ProgressFailed, Completed: i + 1, URL: u, Error: err})
			if !p.KeepGoing {
				return result, fmt.Errorf("publishing %s: %w", u, err)
			}
		case skipped:
			result.Skipped++
			emit(ProgressEvent{Type: ProgressSkipped, Completed: i + 1, URL: u, Publication: pub})
		default:
			result.Published++
			result.Publications = append(result.Publications, pub)
			emit(ProgressEvent{Type: ProgressPublished, Completed: i + 1, URL: u, Publication: pub})
		}
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: len(urls)})
	return result, nil
}

// Publish creates one document holding the content of the page at pageURL.
// When the page is skipped as unchanged, the previous publication is returned.
func (p *Publisher) Publish(ctx context.Context, pageURL string) (*pagedoc.Publication, error) {
	pub, _, err := p.publish(ctx, pageURL)
	return pub, err
}

func (p *Publisher) publish(ctx context.Context, pageURL string) (*pagedoc.Publication, bool, error) {
	elements, err := p.Elements(ctx, pageURL)
	if err != nil {
		return nil, false, err
	}
	hash := ContentHash(elements)

	if p.SkipUnchanged && p.Publications != nil {
		prev, err := p.Publications.FindPublications(ctx, pagedoc.PublicationFilter{SourceURL: &pageURL, Limit: 1})
		if err != nil {
			return nil, false, fmt.Errorf("publication history: %w", err)
		}
		if len(prev) > 0 && prev[0].ContentHash == hash {
			return prev[0], true, nil
		}
	}

	ops := pagedoc.BuildRequests(elements)

	doc, err := p.Documents.CreateDocument(ctx, pagedoc.TitleFromURL(pageURL))
	if err != nil {
		return nil, false, err
	}
	if err := p.Documents.BatchUpdate(ctx, doc.ID, ops); err != nil {
		return nil, false, err
	}

	pub := &pagedoc.Publication{
		SourceURL:   pageURL,
		DocumentID:  doc.ID,
		DocumentURL: doc.URL,
		Title:       doc.Title,
		Elements:    len(elements),
		Operations:  len(ops),
		ContentHash: hash,
		PublishedAt: time.Now().UTC(),
	}
	if pub.DocumentURL == "" {
		pub.DocumentURL = pagedoc.DocumentURL(doc.ID)
	}

	if p.Publications != nil {
		if err := p.Publications.CreatePublication(ctx, pub); err != nil {
			return pub, false, fmt.Errorf("recording publication: %w", err)
		}
	}

	return pub, false, nil
}

// Page fetches pageURL, retrying transient failures, and returns its HTML
// after the optional cleaner ran.
func (p *Publisher) Page(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "", pagedoc.Errorf(pagedoc.EINVALID, "invalid URL %q", pageURL)
	}

	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, p.Fetcher.Fetch, p.Logf, delays)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}

	if p.Cleaner != nil {
		cleaned, err := p.Cleaner.Clean(html)
		if err != nil {
			return "", fmt.Errorf("cleaning page: %w", err)
		}
		html = cleaned.ContentHTML
	}
	return html, nil
}

// Elements returns the content elements of pageURL.
func (p *Publisher) Elements(ctx context.Context, pageURL string) ([]pagedoc.ContentElement, error) {
	html, err := p.Page(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return p.Extractor.Extract(html), nil
}

// ContentHash returns a stable hash of elements, used to detect pages whose
// content did not change since they were last published.
func ContentHash(elements []pagedoc.ContentElement) string {
	h := xxhash.New()
	for _, el := range elements {
		_, _ = h.WriteString(string(el.Kind))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(el.Text)
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
