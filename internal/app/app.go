package app

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/config"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/server"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/usecase"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/logger"
)

const serviceName = "estate-backoffice"

func Invoke(funcs ...any) *fx.App {
	conf := config.MustLoad()
	if err := logger.Init(logger.Config{
		Level:       conf.Log.Level,
		Environment: conf.Log.Environment,
		Service:     serviceName,
	}); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}

	log := logger.MustNamed("app")
	log.Debugw("config loaded",
		"store_backend", conf.Store.Backend,
		"addr", conf.Server.Addr(),
		"sanity_dataset", conf.Sanity.Dataset,
		"property_min_images", conf.Validation.PropertyMinImages,
	)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newContentStore,
			newDocumentStore,
			newBuilder,

			usecase.NewAgentUsecase,
			usecase.NewClientUsecase,
			usecase.NewPropertyUsecase,

			server.NewController,
			server.NewAuthorizer,
			server.NewEcho,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
