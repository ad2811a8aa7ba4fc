// Package gdocs implements pagedoc.DocumentService on the Google Docs API.
package gdocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/pagedoc"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// BulletPreset is the glyph preset applied to list items.
const BulletPreset = "BULLET_DISC_CIRCLE_SQUARE"

// Scopes are the OAuth2 scopes needed to create and edit documents.
var Scopes = []string{
	docs.DocumentsScope,
	docs.DriveScope,
}

// Ensure DocumentService implements pagedoc.DocumentService at compile time.
var _ pagedoc.DocumentService = (*DocumentService)(nil)

// DocumentService creates and edits Google Docs documents.
type DocumentService struct {
	svc *docs.Service
}

// NewDocumentService creates a DocumentService. Pass option.WithHTTPClient
// with an OAuth2-authorized client for normal use.
func NewDocumentService(ctx context.Context, opts ...option.ClientOption) (*DocumentService, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating docs client: %w", err)
	}
	return &DocumentService{svc: svc}, nil
}

// CreateDocument creates a new, empty document with the given title.
func (s *DocumentService) CreateDocument(ctx context.Context, title string) (*pagedoc.Document, error) {
	doc, err := s.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, translateError(err)
	}
	return &pagedoc.Document{
		ID:    doc.DocumentId,
		Title: doc.Title,
		URL:   pagedoc.DocumentURL(doc.DocumentId),
	}, nil
}

// BatchUpdate sends ops to the document in a single batchUpdate call.
// An empty batch is not sent.
func (s *DocumentService) BatchUpdate(ctx context.Context, documentID string, ops []pagedoc.EditOperation) error {
	if documentID == "" {
		return pagedoc.Errorf(pagedoc.EINVALID, "document ID required")
	}
	if len(ops) == 0 {
		return nil
	}

	req := &docs.BatchUpdateDocumentRequest{Requests: Requests(ops)}
	if _, err := s.svc.Documents.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return translateError(err)
	}
	return nil
}

// Requests translates edit operations into Docs API requests, keeping order.
func Requests(ops []pagedoc.EditOperation) []*docs.Request {
	reqs := make([]*docs.Request, 0, len(ops))
	for _, op := range ops {
		switch op := op.(type) {
		case pagedoc.InsertText:
			reqs = append(reqs, &docs.Request{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: int64(op.Index)},
					Text:     op.Text,
				},
			})
		case pagedoc.ApplyHeadingStyle:
			reqs = append(reqs, &docs.Request{
				UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
					Range: docsRange(op.Range),
					ParagraphStyle: &docs.ParagraphStyle{
						NamedStyleType: fmt.Sprintf("HEADING_%d", op.Level),
					},
					Fields: "namedStyleType",
				},
			})
		case pagedoc.ApplyBulletStyle:
			reqs = append(reqs, &docs.Request{
				CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
					Range:        docsRange(op.Range),
					BulletPreset: BulletPreset,
				},
			})
		}
	}
	return reqs
}

func docsRange(r pagedoc.Range) *docs.Range {
	return &docs.Range{
		StartIndex: int64(r.Start),
		EndIndex:   int64(r.End),
	}
}

// translateError maps Google API errors onto application error codes.
func translateError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusBadRequest:
		return pagedoc.Errorf(pagedoc.EINVALID, "document service rejected request: %s", gerr.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return pagedoc.Errorf(pagedoc.EUNAUTHORIZED, "document service denied access: %s", gerr.Message)
	case http.StatusNotFound:
		return pagedoc.Errorf(pagedoc.ENOTFOUND, "document not found: %s", gerr.Message)
	}
	return fmt.Errorf("document service: %w", err)
}
