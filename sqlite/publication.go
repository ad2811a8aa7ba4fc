package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagedoc"
	"github.com/google/uuid"
)

var _ pagedoc.PublicationService = (*PublicationService)(nil)

// PublicationService implements pagedoc.PublicationService using SQLite.
type PublicationService struct {
	db *DB
}

// NewPublicationService creates a new PublicationService.
func NewPublicationService(db *DB) *PublicationService {
	return &PublicationService{db: db}
}

// CreatePublication records a new publication.
func (s *PublicationService) CreatePublication(ctx context.Context, pub *pagedoc.Publication) error {
	if err := pub.Validate(); err != nil {
		return err
	}

	pub.ID = uuid.New().String()
	pub.PublishedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO publications (id, source_url, document_id, document_url, title, elements, operations, content_hash, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, pub.ID, pub.SourceURL, pub.DocumentID, pub.DocumentURL, pub.Title,
		pub.Elements, pub.Operations, pub.ContentHash, pub.PublishedAt.Format(time.RFC3339))

	return err
}

// FindPublications retrieves publications matching the filter, newest first.
func (s *PublicationService) FindPublications(ctx context.Context, filter pagedoc.PublicationFilter) ([]*pagedoc.Publication, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, document_id, document_url, title, elements, operations, content_hash, published_at FROM publications WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	// rowid breaks ties between publications made within the same second.
	query.WriteString(" ORDER BY published_at DESC, rowid DESC")

	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		// OFFSET is only valid after a LIMIT; -1 means no limit.
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pubs []*pagedoc.Publication
	for rows.Next() {
		var pub pagedoc.Publication
		var publishedAt string

		if err := rows.Scan(&pub.ID, &pub.SourceURL, &pub.DocumentID, &pub.DocumentURL, &pub.Title,
			&pub.Elements, &pub.Operations, &pub.ContentHash, &publishedAt); err != nil {
			return nil, err
		}

		if pub.PublishedAt, err = time.Parse(time.RFC3339, publishedAt); err != nil {
			return nil, fmt.Errorf("publication %s: bad published_at: %w", pub.ID, err)
		}

		pubs = append(pubs, &pub)
	}

	return pubs, rows.Err()
}
