package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
)

type clientUsecase struct {
	builder *document.Builder
	writer  writer
}

func NewClientUsecase(builder *document.Builder, st store.DocumentStore) ClientUsecase {
	return &clientUsecase{
		builder: builder,
		writer:  writer{store: st, docType: document.TypeClient},
	}
}

func (uc *clientUsecase) Create(ctx context.Context, req *models.CreateClientRequest) (document.Document, error) {
	draft, err := uc.builder.NewClient(ctx, req)
	return uc.writer.create(ctx, draft, err)
}

func (uc *clientUsecase) Edit(ctx context.Context, req *models.EditClientRequest) (document.Document, error) {
	draft, err := uc.builder.ClientPatch(ctx, req)
	return uc.writer.patch(ctx, draft, err)
}

func (uc *clientUsecase) Delete(ctx context.Context, id string) error {
	return uc.writer.delete(ctx, id)
}

// List returns clients by first name.
func (uc *clientUsecase) List(ctx context.Context) ([]document.Document, error) {
	return uc.writer.list(ctx, "first_name", false)
}

func (uc *clientUsecase) Get(ctx context.Context, id string) (document.Document, error) {
	return uc.writer.get(ctx, id)
}
