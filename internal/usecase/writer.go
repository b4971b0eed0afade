package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/ctxval"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/logger"
)

type orphanedAssetsKey struct{}

// OrphanedAssets returns the asset ids uploaded during the request whose
// document was never written.
func OrphanedAssets(ctx context.Context) []string {
	ids, _ := ctxval.Get[orphanedAssetsKey, []string](ctx, orphanedAssetsKey{})
	return ids
}

// writer commits built documents for one document type.
type writer struct {
	store   store.DocumentStore
	docType string
}

func (w writer) create(ctx context.Context, draft *document.Draft[document.Document], err error) (document.Document, error) {
	if err != nil {
		w.buildFailed(ctx, uploadedIDs(draft), err)
		return nil, err
	}
	doc, err := w.store.Create(ctx, draft.Value)
	if err != nil {
		w.reportOrphans(ctx, draft.Uploaded, err)
		return nil, fmt.Errorf("%w: create %s: %w", models.ErrCommit, w.docType, err)
	}
	return doc, nil
}

func (w writer) patch(ctx context.Context, draft *document.Draft[*document.Patch], err error) (document.Document, error) {
	if err != nil {
		w.buildFailed(ctx, uploadedIDs(draft), err)
		return nil, err
	}
	doc, err := w.store.Patch(ctx, draft.Value)
	if err != nil {
		w.reportOrphans(ctx, draft.Uploaded, err)
		return nil, fmt.Errorf("%w: patch %s %s: %w", models.ErrCommit, w.docType, draft.Value.ID, err)
	}
	return doc, nil
}

// delete removes the document unconditionally. References held by other
// documents are left in place.
func (w writer) delete(ctx context.Context, id string) error {
	if id == "" {
		return models.MissingField("id")
	}
	if err := w.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete %s %s: %w", models.ErrCommit, w.docType, id, err)
	}
	return nil
}

func (w writer) list(ctx context.Context, orderBy string, desc bool) ([]document.Document, error) {
	docs, err := w.store.List(ctx, store.Query{Type: w.docType, OrderBy: orderBy, Descending: desc})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", w.docType, err)
	}
	return docs, nil
}

// get returns the document only when it has the writer's type.
func (w writer) get(ctx context.Context, id string) (document.Document, error) {
	doc, err := w.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", w.docType, id, err)
	}
	if doc.Type() != w.docType {
		return nil, fmt.Errorf("get %s %s: %w", w.docType, id, models.ErrNotFound)
	}
	return doc, nil
}

// buildFailed reports assets uploaded before a later upload of the same
// build failed.
func (w writer) buildFailed(ctx context.Context, uploaded []string, err error) {
	if errors.Is(err, models.ErrValidation) {
		return
	}
	w.reportOrphans(ctx, uploaded, err)
}

func uploadedIDs[T any](d *document.Draft[T]) []string {
	if d == nil {
		return nil
	}
	return d.Uploaded
}

func (w writer) reportOrphans(ctx context.Context, ids []string, cause error) {
	if len(ids) == 0 {
		return
	}
	ctxval.Append(ctx, orphanedAssetsKey{}, ids...)
	logger.FromContext(ctx).Warnw("uploaded assets left without a document",
		"type", w.docType,
		"asset_ids", ids,
		"error", cause,
	)
}
