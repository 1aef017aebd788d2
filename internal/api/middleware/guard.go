package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/service"
)

// Guard puts the access guard in front of a group of views. With no roles
// every authenticated user passes.
func Guard(sessions SessionSource, guard *service.AccessGuard, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.Evaluate(sessions.Current(), c.Request().RequestURI, roles)

			switch d.Kind {
			case service.Wait:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			case service.RedirectLogin, service.RedirectLanding:
				return c.Redirect(http.StatusFound, d.Location)
			}
			return next(c)
		}
	}
}
