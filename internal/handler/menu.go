package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/repository"
)

// MenuHandler exposes the menu catalog.  Purge, when set, is called after
// every successful mutation to drop cached menu responses.
type MenuHandler struct {
	Menu  *repository.MenuRepo
	Purge func(ctx context.Context) error
}

// NewMenuHandler panics if menu is nil.  purge may be nil.
func NewMenuHandler(menu *repository.MenuRepo, purge func(ctx context.Context) error) *MenuHandler {
	if menu == nil {
		panic("nil repository passed to NewMenuHandler")
	}
	return &MenuHandler{Menu: menu, Purge: purge}
}

func (h *MenuHandler) purge(c echo.Context) {
	if h.Purge != nil {
		warnIf(c, "purge menu cache", h.Purge(c.Request().Context()))
	}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.Menu.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/menu/:id.
func (h *MenuHandler) Get(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return badRequest(c, "invalid menu item id")
	}
	it, err := h.Menu.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(c echo.Context) error {
	var body model.NewMenuItem
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	it, err := h.Menu.Add(c.Request().Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.JSON(http.StatusCreated, it)
}

// Update handles PUT /api/menu/:id.  Fields absent from the body keep
// their current values.
func (h *MenuHandler) Update(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return badRequest(c, "invalid menu item id")
	}
	var patch model.MenuItemPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	it, err := h.Menu.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.JSON(http.StatusOK, it)
}

// Delete handles DELETE /api/menu/:id.  Orders that reference the item are
// left as they are.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return badRequest(c, "invalid menu item id")
	}
	if err := h.Menu.Remove(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.NoContent(http.StatusNoContent)
}
