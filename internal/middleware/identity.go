package middleware

// identity.go implements the trusted-identity contract: the caller's
// numeric user id arrives in a plain request header, unverified.  The
// extraction lives here as the single point a real authentication
// layer could replace without touching handlers or services.

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserHeader is the request header carrying the caller's user id.
const UserHeader = "X-Sharer-User-Id"

// ContextUserKey is the echo context key the parsed id is stored under.
const ContextUserKey = "user_id"

// RequireIdentity parses the identity header into the context.  A
// missing, non-numeric or non-positive value is rejected with 400
// before any handler runs.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(UserHeader)
			if raw == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":   "Validation error",
					"message": "missing " + UserHeader + " header",
				})
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":   "Validation error",
					"message": "invalid " + UserHeader + " header",
				})
			}
			c.Set(ContextUserKey, id)
			return next(c)
		}
	}
}
