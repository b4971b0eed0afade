package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func (h *controller) CreateAgent(c echo.Context) error {
	var req models.CreateAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.agents.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *controller) EditAgent(c echo.Context) error {
	var req models.EditAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.agents.Edit(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *controller) DeleteAgent(c echo.Context) error {
	var req models.DeleteAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.agents.Delete(c.Request().Context(), req.UserID); err != nil {
		return err
	}
	return deleted(c, "Agent")
}

func (h *controller) ListAgents(c echo.Context) error {
	docs, err := h.agents.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *controller) GetAgent(c echo.Context) error {
	doc, err := h.agents.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}
