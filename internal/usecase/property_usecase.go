package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
)

type propertyUsecase struct {
	builder *document.Builder
	writer  writer
}

func NewPropertyUsecase(builder *document.Builder, st store.DocumentStore) PropertyUsecase {
	return &propertyUsecase{
		builder: builder,
		writer:  writer{store: st, docType: document.TypeProperty},
	}
}

func (uc *propertyUsecase) Create(ctx context.Context, req *models.CreatePropertyRequest) (document.Document, error) {
	draft, err := uc.builder.NewProperty(ctx, req)
	return uc.writer.create(ctx, draft, err)
}

func (uc *propertyUsecase) Edit(ctx context.Context, req *models.EditPropertyRequest) (document.Document, error) {
	draft, err := uc.builder.PropertyPatch(ctx, req)
	return uc.writer.patch(ctx, draft, err)
}

func (uc *propertyUsecase) Delete(ctx context.Context, id string) error {
	return uc.writer.delete(ctx, id)
}

// List returns properties, most recently built first.
func (uc *propertyUsecase) List(ctx context.Context) ([]document.Document, error) {
	return uc.writer.list(ctx, "built_in", true)
}

func (uc *propertyUsecase) Get(ctx context.Context, id string) (document.Document, error) {
	return uc.writer.get(ctx, id)
}
