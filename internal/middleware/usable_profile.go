package middleware

import (
	"net/http"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// UsableProfileMiddleware rejects requests from accounts that have not
// completed their profile or verified their email. Matching endpoints
// only operate between usable profiles.
func UsableProfileMiddleware(profiles services.ProfileStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			profile, err := profiles.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
			}
			if !profile.Usable() {
				return echo.NewHTTPError(http.StatusForbidden, "Complete and verify your profile first")
			}

			return next(c)
		}
	}
}
