package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-portal/internal/core/token"
)

// TokenVerifier abstracts the bearer-token codec.
type TokenVerifier interface {
	Verify(tokenString string) (token.Claims, error)
}

// Auth extracts and verifies the bearer token and injects the asserted
// identity into the request context. The claims are what the token says, not
// what the store says; role enforcement re-reads the store (see RBAC).
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
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

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", string(claims.Role))

			return next(c)
		}
	}
}
