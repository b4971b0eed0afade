package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/estate-backoffice/internal/server/middleware"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/usecase"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/logger"
)

// NewEcho builds the HTTP server with its middleware stack and routes.
func NewEcho(conf *config.Config, handler Controller, authorizer pkgmdw.Authorizer) (*echo.Echo, error) {
	origins, err := regexp.Compile(conf.Server.CORSOrigins)
	if err != nil {
		return nil, fmt.Errorf("compile SERVER_CORS_ORIGINS: %w", err)
	}

	httpLog := logger.MustNamed("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(httpLog)

	logConfig := pkgmdw.LogRequestConfig{
		Logger: httpLog,
		Enabled: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path != "/health" && path != "/metrics"
		},
		KeyAndValues: func(c echo.Context) []any {
			if ids := usecase.OrphanedAssets(c.Request().Context()); len(ids) > 0 {
				return []any{"orphaned_assets", ids}
			}
			return nil
		},
	}

	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.ContextValues())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(pkgmdw.Metrics())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.FromContext(c.Request().Context()).Errorw("PANIC RECOVER", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(pkgmdw.CORS(origins))
	e.Use(middleware.BodyLimit(conf.Server.BodyLimit))

	registerRoutes(e, handler, authorizer)
	return e, nil
}

func registerRoutes(e *echo.Echo, h Controller, authorizer pkgmdw.Authorizer) {
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/agents", h.ListAgents)
	api.GET("/agents/:id", h.GetAgent)
	api.GET("/clients", h.ListClients)
	api.GET("/clients/:id", h.GetClient)
	api.GET("/properties", h.ListProperties)
	api.GET("/properties/:id", h.GetProperty)

	// every mutating route passes the authorizer
	auth := pkgmdw.Authorize(authorizer)
	api.POST("/add-agent", h.CreateAgent, auth)
	api.PUT("/edit-agent", h.EditAgent, auth)
	api.POST("/delete-agent", h.DeleteAgent, auth)
	api.POST("/add-client", h.CreateClient, auth)
	api.PUT("/edit-client", h.EditClient, auth)
	api.POST("/delete-client", h.DeleteClient, auth)
	api.POST("/add-property", h.CreateProperty, auth)
	api.PUT("/edit-property", h.EditProperty, auth)
	api.POST("/delete-property", h.DeleteProperty, auth)
}

func NewAuthorizer() pkgmdw.Authorizer {
	return pkgmdw.AllowAll{Log: logger.MustNamed("authz")}
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	e *echo.Echo,
) {
	log := logger.MustNamed("server")
	addr := conf.Server.Addr()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting HTTP server", "addr", addr)
				if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("HTTP server stopped", zap.Error(err))
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
