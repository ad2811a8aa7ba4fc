package mock

import (
	"context"

	"github.com/fwojciec/pagedoc"
)

var _ pagedoc.PublicationService = (*PublicationService)(nil)

// PublicationService is a mock implementation of pagedoc.PublicationService.
type PublicationService struct {
	CreatePublicationFn func(ctx context.Context, pub *pagedoc.Publication) error
	FindPublicationsFn  func(ctx context.Context, filter pagedoc.PublicationFilter) ([]*pagedoc.Publication, error)
}

func (s *PublicationService) CreatePublication(ctx context.Context, pub *pagedoc.Publication) error {
	return s.CreatePublicationFn(ctx, pub)
}

func (s *PublicationService) FindPublications(ctx context.Context, filter pagedoc.PublicationFilter) ([]*pagedoc.Publication, error) {
	return s.FindPublicationsFn(ctx, filter)
}
