package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/repository"
	"github.com/iliyamo/restaurant-ops/internal/service"
)

// OrderArchiver persists orders and their status changes outside the
// process.
type OrderArchiver interface {
	SaveOrder(ctx context.Context, o model.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, at time.Time) error
}

// OrderHandler exposes the order ledger and prices orders against the menu.
type OrderHandler struct {
	Orders  *repository.OrderRepo
	Menu    service.MenuReader
	Events  service.Publisher
	Archive OrderArchiver // optional
	Now     func() time.Time
}

// NewOrderHandler panics if orders or menu is nil.  A nil publisher
// discards events; a nil archiver disables archiving.
func NewOrderHandler(orders *repository.OrderRepo, menu service.MenuReader, events service.Publisher, archive OrderArchiver) *OrderHandler {
	if orders == nil || menu == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &OrderHandler{Orders: orders, Menu: menu, Events: events, Archive: archive, Now: time.Now}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	o, err := h.Orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Create handles POST /api/orders.  Table and menu references are stored
// as given; they are resolved only when the order is priced.
func (h *OrderHandler) Create(c echo.Context) error {
	var body model.OrderRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx := c.Request().Context()
	o, err := h.Orders.Create(ctx, body)
	if err != nil {
		return respondError(c, err)
	}
	warnIf(c, "publish order.placed", h.Events.OrderPlaced(ctx, o))
	if h.Archive != nil {
		warnIf(c, "archive order", h.Archive.SaveOrder(ctx, o))
	}
	return c.JSON(http.StatusCreated, o)
}

// UpdateStatus handles PUT /api/orders/:id/status with {"status": "..."}.
// Any move between known statuses is accepted.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var body struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx := c.Request().Context()
	o, err := h.Orders.SetStatus(ctx, c.Param("id"), body.Status)
	if err != nil {
		return respondError(c, err)
	}
	at := h.Now()
	warnIf(c, "publish order.status_changed", h.Events.OrderStatusChanged(ctx, o, at))
	if h.Archive != nil {
		warnIf(c, "archive order status", h.Archive.UpdateOrderStatus(ctx, o.ID, o.Status, at))
	}
	return c.JSON(http.StatusOK, o)
}

// Total handles GET /api/orders/:id/total.  The bill uses current menu
// prices; a line whose item was removed from the menu is a 404.
func (h *OrderHandler) Total(c echo.Context) error {
	ctx := c.Request().Context()
	o, err := h.Orders.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	bill, err := service.PriceOrder(ctx, o, h.Menu)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bill)
}
