package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/api/middleware"
)

// ctxUserID extracts the caller id injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing or
// non-positive id means the gate did not run, so the request is rejected
// with 401 even though the route should already be protected.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get(middleware.CtxUserID).(int64)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
