package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/config"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/sanity"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/util"
)

func newContentStore(lc fx.Lifecycle, cfg *config.Config) (store.ContentStore, error) {
	switch cfg.Store.Backend {
	case config.BackendSanity:
		return newSanity(cfg)
	case config.BackendMongoDB:
		return newMongoStore(lc, cfg)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func newDocumentStore(s store.ContentStore) store.DocumentStore {
	return s
}

func newBuilder(cfg *config.Config, s store.ContentStore) *document.Builder {
	return document.NewBuilder(s, document.WithMinImages(cfg.Validation.PropertyMinImages))
}

func newSanity(cfg *config.Config) (*sanity.Client, error) {
	client, err := sanity.New(sanity.Config{
		ProjectID:   cfg.Sanity.ProjectID,
		Dataset:     cfg.Sanity.Dataset,
		APIVersion:  cfg.Sanity.APIVersion,
		Token:       cfg.Sanity.Token,
		BaseURL:     cfg.Sanity.BaseURL,
		ReadRetries: util.DefaultRestyOptions.RetryCount,
		Timeout:     30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("init sanity client: %w", err)
	}
	return client, nil
}

func newMongoStore(lc fx.Lifecycle, cfg *config.Config) (*mongodb.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	s, err := mongodb.NewStore(db, cfg.Database.AssetBucket)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Ping(ctx); err != nil {
				return err
			}
			return s.EnsureIndexes(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return s, nil
}
