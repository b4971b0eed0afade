package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func (h *controller) CreateProperty(c echo.Context) error {
	var req models.CreatePropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.properties.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *controller) EditProperty(c echo.Context) error {
	var req models.EditPropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.properties.Edit(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *controller) DeleteProperty(c echo.Context) error {
	var req models.DeletePropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.properties.Delete(c.Request().Context(), req.PropertyID); err != nil {
		return err
	}
	return deleted(c, "Property")
}

func (h *controller) ListProperties(c echo.Context) error {
	docs, err := h.properties.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *controller) GetProperty(c echo.Context) error {
	doc, err := h.properties.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}
