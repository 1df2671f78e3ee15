package handlers

import (
	"net/http"

	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// BlockHandler handles block and report HTTP requests
type BlockHandler struct {
	matchService *services.MatchService
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(matchService *services.MatchService) *BlockHandler {
	return &BlockHandler{matchService: matchService}
}

// RegisterBlockRoutes registers block and report routes
func (h *BlockHandler) RegisterBlockRoutes(g *echo.Group) {
	g.POST("/block/:userId", h.BlockUser)
	g.POST("/report/:userId", h.ReportUser)
}

// BlockUser blocks the target user and dissolves any match between them
func (h *BlockHandler) BlockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	blockedID, err := targetUserID(c)
	if err != nil {
		return err
	}
	if blockedID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot block yourself")
	}

	if err := h.matchService.BlockUser(c.Request().Context(), currentUserID, blockedID); err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User blocked"})
}

// ReportUser reports the target user as a fake account
func (h *BlockHandler) ReportUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reportedID, err := targetUserID(c)
	if err != nil {
		return err
	}
	if reportedID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot report yourself")
	}

	if err := h.matchService.ReportUser(c.Request().Context(), currentUserID, reportedID); err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User reported"})
}
