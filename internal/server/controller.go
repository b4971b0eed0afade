package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	pkgmdw "github.com/nguyentranbao-ct/estate-backoffice/internal/server/middleware"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/usecase"
)

type Controller interface {
	Health(c echo.Context) error

	CreateAgent(c echo.Context) error
	EditAgent(c echo.Context) error
	DeleteAgent(c echo.Context) error
	ListAgents(c echo.Context) error
	GetAgent(c echo.Context) error

	CreateClient(c echo.Context) error
	EditClient(c echo.Context) error
	DeleteClient(c echo.Context) error
	ListClients(c echo.Context) error
	GetClient(c echo.Context) error

	CreateProperty(c echo.Context) error
	EditProperty(c echo.Context) error
	DeleteProperty(c echo.Context) error
	ListProperties(c echo.Context) error
	GetProperty(c echo.Context) error
}

type controller struct {
	agents     usecase.AgentUsecase
	clients    usecase.ClientUsecase
	properties usecase.PropertyUsecase
}

func NewController(
	agents usecase.AgentUsecase,
	clients usecase.ClientUsecase,
	properties usecase.PropertyUsecase,
) Controller {
	return &controller{
		agents:     agents,
		clients:    clients,
		properties: properties,
	}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "estate-backoffice",
	})
}

// bindAndValidate decodes the JSON body into req and validates it. Decode
// failures are reported as validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		cause := err
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Internal != nil {
			cause = he.Internal
		}
		return &models.ValidationError{Message: fmt.Sprintf("invalid request body: %v", cause)}
	}
	return c.Validate(req)
}

func deleted(c echo.Context, entity string) error {
	return c.JSON(http.StatusOK, pkgmdw.MessageResponse{
		Message: entity + " deleted successfully",
	})
}
