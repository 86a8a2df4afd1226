package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/handler"
)

// Handlers groups everything the API routes dispatch to.
type Handlers struct {
	Health   echo.HandlerFunc
	Tables   *handler.TableHandler
	Menu     *handler.MenuHandler
	Bookings *handler.BookingHandler
	Orders   *handler.OrderHandler
	Stats    *handler.StatsHandler
}

// RegisterRoutes mounts the probes at the root and the API under /api.
// limit applies to every API route; menuCache only to the menu reads.
// Either may be nil.
func RegisterRoutes(e *echo.Echo, h Handlers, limit, menuCache echo.MiddlewareFunc) {
	// Liveness probe for load balancers, outside rate limiting.
	e.GET("/healthz", handler.Health)

	var mws []echo.MiddlewareFunc
	if limit != nil {
		mws = append(mws, limit)
	}
	api := e.Group("/api", mws...)
	api.GET("/health", h.Health)

	tables := api.Group("/tables")
	tables.GET("", h.Tables.List)
	tables.POST("", h.Tables.Create)
	tables.GET("/qr/:qrToken", h.Tables.GetByQR)
	tables.GET("/:id", h.Tables.Get)
	tables.PUT("/:id/status", h.Tables.UpdateStatus)

	var cached []echo.MiddlewareFunc
	if menuCache != nil {
		cached = append(cached, menuCache)
	}
	menu := api.Group("/menu")
	menu.GET("", h.Menu.List, cached...)
	menu.GET("/:id", h.Menu.Get, cached...)
	menu.POST("", h.Menu.Create)
	menu.PUT("/:id", h.Menu.Update)
	menu.DELETE("/:id", h.Menu.Delete)

	bookings := api.Group("/bookings")
	bookings.GET("", h.Bookings.List)
	bookings.POST("", h.Bookings.Create)
	bookings.GET("/:id", h.Bookings.Get)

	orders := api.Group("/orders")
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Create)
	orders.GET("/:id", h.Orders.Get)
	orders.PUT("/:id/status", h.Orders.UpdateStatus)
	orders.GET("/:id/total", h.Orders.Total)

	// Stats are recomputed on every request; never behind the cache.
	api.GET("/stats", h.Stats.Get)
}
