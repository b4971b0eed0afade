package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
)

type agentUsecase struct {
	builder *document.Builder
	writer  writer
}

func NewAgentUsecase(builder *document.Builder, st store.DocumentStore) AgentUsecase {
	return &agentUsecase{
		builder: builder,
		writer:  writer{store: st, docType: document.TypeUser},
	}
}

func (uc *agentUsecase) Create(ctx context.Context, req *models.CreateAgentRequest) (document.Document, error) {
	draft, err := uc.builder.NewUser(ctx, req)
	return uc.writer.create(ctx, draft, err)
}

func (uc *agentUsecase) Edit(ctx context.Context, req *models.EditAgentRequest) (document.Document, error) {
	draft, err := uc.builder.UserPatch(ctx, req)
	return uc.writer.patch(ctx, draft, err)
}

func (uc *agentUsecase) Delete(ctx context.Context, id string) error {
	return uc.writer.delete(ctx, id)
}

// List returns users, newest first.
func (uc *agentUsecase) List(ctx context.Context) ([]document.Document, error) {
	return uc.writer.list(ctx, "created_at", true)
}

func (uc *agentUsecase) Get(ctx context.Context, id string) (document.Document, error) {
	return uc.writer.get(ctx, id)
}
