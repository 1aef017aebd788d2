package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// SessionSource exposes the current session snapshot.
type SessionSource interface {
	Current() domain.Session
}

// Auth validates the bearer JWT and injects its claims into the context. The
// token subject must be the user currently logged in to this instance, so a
// token outlives neither a logout nor a switch to another account.
func Auth(jwtSecret string, sessions SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			session := sessions.Current()
			if session.Loading() {
				return domain.ErrSessionLoading
			}
			if !session.Authenticated() || session.User.ID != sub {
				return echo.NewHTTPError(http.StatusUnauthorized, "token does not match the active session")
			}

			c.Set("user_id", sub)
			c.Set("role", session.User.Role().String())

			return next(c)
		}
	}
}
