package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/auth"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

// SessionAuth requires a bearer session token issued by the verify endpoint
// and stores the buyer's id on the echo context.
func SessionAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session token")
			}

			claims, err := auth.ParseToken(strings.TrimSpace(token), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session token").SetInternal(err)
			}

			c.Set(userIDKey, claims.Subject)
			c.Set(userEmailKey, claims.Email)
			return next(c)
		}
	}
}

func UserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(userIDKey).(string)
	return id, ok && id != ""
}
