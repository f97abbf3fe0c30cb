package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hims/hims/pkg/errs"
)

// RequireRole returns middleware that admits only the listed roles. A member
// with a different role is not shown an error page: the 403 body carries the
// member's own landing path so the front end redirects there instead.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, ok := ScopeFromContext(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":   errs.ReasonNoAssociation,
					"message": "your account is not associated with this hospital; contact an administrator",
				})
			}
			for _, r := range roles {
				if scope.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{
				"error":   errs.ReasonRoleMismatch,
				"landing": scope.Role.Landing(),
			})
		}
	}
}
