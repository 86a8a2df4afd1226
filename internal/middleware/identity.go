package middleware

import "github.com/labstack/echo/v4"

// TableTokenHeader carries the QR token of the table a guest is seated at.
const TableTokenHeader = "X-Table-Token"

// tableToken identifies a guest by the table they scanned.  There are no
// user accounts; requests without a token are "guest".
func tableToken(c echo.Context) string {
	if v := c.Request().Header.Get(TableTokenHeader); v != "" {
		return v
	}
	if v := c.QueryParam("table"); v != "" {
		return v
	}
	return "guest"
}
