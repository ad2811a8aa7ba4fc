package pagedoc

import (
	"context"
	"time"
)

// Publication records a page that was published into a document.
type Publication struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	DocumentID  string    `json:"documentId"`
	DocumentURL string    `json:"documentUrl"`
	Title       string    `json:"title"`
	Elements    int       `json:"elements"`
	Operations  int       `json:"operations"`
	ContentHash string    `json:"contentHash"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Validate returns an error if the publication contains invalid fields.
func (p *Publication) Validate() error {
	if p.SourceURL == "" {
		return Errorf(EINVALID, "publication source URL required")
	}
	if p.DocumentID == "" {
		return Errorf(EINVALID, "publication document ID required")
	}
	return nil
}

// PublicationService represents a service for managing publication history.
type PublicationService interface {
	// CreatePublication records a new publication.
	// ID and PublishedAt are assigned by the service.
	CreatePublication(ctx context.Context, pub *Publication) error

	// FindPublications retrieves publications matching the filter,
	// newest first.
	FindPublications(ctx context.Context, filter PublicationFilter) ([]*Publication, error)
}

// PublicationFilter represents a filter for FindPublications.
type PublicationFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
