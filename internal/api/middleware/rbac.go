package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// RBAC enforces role-based access control on API routes. It runs after Auth,
// which sets the role from the live session. A refused role surfaces as
// domain.ErrForbidden for the central error handler.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
