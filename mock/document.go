package mock

import (
	"context"

	"github.com/fwojciec/pagedoc"
)

var _ pagedoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of pagedoc.DocumentService.
type DocumentService struct {
	CreateDocumentFn func(ctx context.Context, title string) (*pagedoc.Document, error)
	BatchUpdateFn    func(ctx context.Context, documentID string, ops []pagedoc.EditOperation) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, title string) (*pagedoc.Document, error) {
	return s.CreateDocumentFn(ctx, title)
}

func (s *DocumentService) BatchUpdate(ctx context.Context, documentID string, ops []pagedoc.EditOperation) error {
	return s.BatchUpdateFn(ctx, documentID, ops)
}
