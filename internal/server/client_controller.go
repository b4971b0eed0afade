package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func (h *controller) CreateClient(c echo.Context) error {
	var req models.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.clients.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *controller) EditClient(c echo.Context) error {
	var req models.EditClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.clients.Edit(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *controller) DeleteClient(c echo.Context) error {
	var req models.DeleteClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.clients.Delete(c.Request().Context(), req.ClientID); err != nil {
		return err
	}
	return deleted(c, "Client")
}

func (h *controller) ListClients(c echo.Context) error {
	docs, err := h.clients.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *controller) GetClient(c echo.Context) error {
	doc, err := h.clients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}
