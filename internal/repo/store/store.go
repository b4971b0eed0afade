// Package store defines the content store the use cases write through.
// Implementations map their own failures onto models.ErrNotFound and
// models.ErrPermissionDenied.
package store

import (
	"context"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

// Query selects every document of one type in a fixed order.
type Query struct {
	Type       string
	OrderBy    string
	Descending bool
}

type DocumentStore interface {
	Create(ctx context.Context, doc document.Document) (document.Document, error)
	Patch(ctx context.Context, patch *document.Patch) (document.Document, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (document.Document, error)
	List(ctx context.Context, q Query) ([]document.Document, error)
}

type AssetUploader interface {
	Upload(ctx context.Context, kind models.AssetKind, asset models.Asset) (string, error)
}

type ContentStore interface {
	DocumentStore
	AssetUploader
}
