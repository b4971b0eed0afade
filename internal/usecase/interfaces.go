package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

type AgentUsecase interface {
	Create(ctx context.Context, req *models.CreateAgentRequest) (document.Document, error)
	Edit(ctx context.Context, req *models.EditAgentRequest) (document.Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]document.Document, error)
	Get(ctx context.Context, id string) (document.Document, error)
}

type ClientUsecase interface {
	Create(ctx context.Context, req *models.CreateClientRequest) (document.Document, error)
	Edit(ctx context.Context, req *models.EditClientRequest) (document.Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]document.Document, error)
	Get(ctx context.Context, id string) (document.Document, error)
}

type PropertyUsecase interface {
	Create(ctx context.Context, req *models.CreatePropertyRequest) (document.Document, error)
	Edit(ctx context.Context, req *models.EditPropertyRequest) (document.Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]document.Document, error)
	Get(ctx context.Context, id string) (document.Document, error)
}
