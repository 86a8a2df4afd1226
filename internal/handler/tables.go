package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/repository"
)

// TableHandler exposes the table registry.
type TableHandler struct {
	Tables *repository.TableRepo
}

// NewTableHandler panics if tables is nil.
func NewTableHandler(tables *repository.TableRepo) *TableHandler {
	if tables == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables}
}

// List handles GET /api/tables.
func (h *TableHandler) List(c echo.Context) error {
	tables, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tables)
}

// Get handles GET /api/tables/:id.
func (h *TableHandler) Get(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return badRequest(c, "invalid table id")
	}
	t, err := h.Tables.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// GetByQR handles GET /api/tables/qr/:qrToken, the lookup a guest's phone
// makes after scanning the code on the table.
func (h *TableHandler) GetByQR(c echo.Context) error {
	t, err := h.Tables.GetByToken(c.Request().Context(), c.Param("qrToken"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /api/tables.
func (h *TableHandler) Create(c echo.Context) error {
	var body model.NewTable
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	t, err := h.Tables.Add(c.Request().Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateStatus handles PUT /api/tables/:id/status with {"status": "..."}.
func (h *TableHandler) UpdateStatus(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return badRequest(c, "invalid table id")
	}
	var body struct {
		Status model.TableStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	t, err := h.Tables.SetStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
