package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/repository"
	"github.com/iliyamo/restaurant-ops/internal/service"
)

// BookingArchiver persists confirmed bookings outside the process.
type BookingArchiver interface {
	SaveBooking(ctx context.Context, b model.Booking) error
}

// BookingHandler exposes the reservation ledger.  Events and Archive are
// best effort: their failures are logged and the booking stands.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Events   service.Publisher
	Archive  BookingArchiver // optional
}

// NewBookingHandler panics if bookings is nil.  A nil publisher discards
// events; a nil archiver disables archiving.
func NewBookingHandler(bookings *repository.BookingRepo, events service.Publisher, archive BookingArchiver) *BookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &BookingHandler{Bookings: bookings, Events: events, Archive: archive}
}

// List handles GET /api/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Create handles POST /api/bookings.  Bookings are confirmed on creation.
func (h *BookingHandler) Create(c echo.Context) error {
	var body model.BookingRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.Create(ctx, body)
	if err != nil {
		return respondError(c, err)
	}
	warnIf(c, "publish booking.confirmed", h.Events.BookingConfirmed(ctx, b))
	if h.Archive != nil {
		warnIf(c, "archive booking", h.Archive.SaveBooking(ctx, b))
	}
	return c.JSON(http.StatusCreated, b)
}
