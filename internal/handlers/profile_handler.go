package handlers

import (
	"net/http"

	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles profile view events
type ProfileHandler struct {
	matchService *services.MatchService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(matchService *services.MatchService) *ProfileHandler {
	return &ProfileHandler{matchService: matchService}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/profile/:userId/view", h.RecordView)
}

// RecordView records that the authenticated user viewed the target
// profile and notifies the owner
func (h *ProfileHandler) RecordView(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	viewedID, err := targetUserID(c)
	if err != nil {
		return err
	}
	if viewedID == currentUserID {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "View recorded"})
	}

	if err := h.matchService.RecordProfileView(c.Request().Context(), currentUserID, viewedID); err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "View recorded"})
}
