package handler // handler contains the HTTP handlers of the restaurant API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-ops/internal/repository"
)

// respondError maps store errors to HTTP: not found → 404, invalid
// argument → 400, anything else → 500 with a generic message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// badRequest writes a 400 with msg.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// intParam parses a positive integer path parameter.
func intParam(c echo.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// warnIf logs a failed best-effort side effect (event publish, archive
// write).  The request has already succeeded and is not failed by it.
func warnIf(c echo.Context, what string, err error) {
	if err != nil {
		c.Logger().Warnf("%s: %v", what, err)
	}
}
