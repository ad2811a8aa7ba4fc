package pagedoc

import "context"

// Document represents a document created on the document service.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DocumentURL returns the edit URL for the document with the given ID.
func DocumentURL(id string) string {
	return "https://docs.google.com/document/d/" + id
}

// DocumentService represents a remote document-editing service.
type DocumentService interface {
	// CreateDocument creates a new, empty document with the given title.
	CreateDocument(ctx context.Context, title string) (*Document, error)

	// BatchUpdate applies ops to the document as a single batch.
	// Operations are applied in order.
	BatchUpdate(ctx context.Context, documentID string, ops []EditOperation) error
}
