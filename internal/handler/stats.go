package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/service"
)

// StatsHandler serves the dashboard counters.  Responses are computed on
// every request and never cached.
type StatsHandler struct {
	Stats *service.StatsService
}

// NewStatsHandler panics if stats is nil.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	if stats == nil {
		panic("nil service passed to NewStatsHandler")
	}
	return &StatsHandler{Stats: stats}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c echo.Context) error {
	s, err := h.Stats.Snapshot(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(http.StatusOK, s)
}
