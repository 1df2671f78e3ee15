package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user's ID from the
// claims stored by the JWT middleware. Returns 0 when missing.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// targetUserID parses the :userId route parameter
func targetUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// serviceHTTPError maps service sentinel errors onto HTTP statuses
func serviceHTTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrBlocked):
		return echo.NewHTTPError(http.StatusForbidden, "Action not allowed between these users")
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Action conflicts with the current relationship state")
	case errors.Is(err, services.ErrInvalidSortKey):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sort key")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
