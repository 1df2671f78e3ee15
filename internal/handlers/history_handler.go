package handlers

import (
	"net/http"
	"strconv"

	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// HistoryHandler exposes who liked and who visited the authenticated
// user's profile
type HistoryHandler struct {
	stores services.Stores
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(stores services.Stores) *HistoryHandler {
	return &HistoryHandler{stores: stores}
}

// RegisterHistoryRoutes registers history routes
func (h *HistoryHandler) RegisterHistoryRoutes(g *echo.Group) {
	g.GET("/history/likes", h.GetLikesReceived)
	g.GET("/history/visits", h.GetVisitsReceived)
}

func historyPagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

// GetLikesReceived lists users who liked the authenticated user
func (h *HistoryHandler) GetLikesReceived(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := historyPagination(c)
	likes, err := h.stores.Relationships().ListLikesReceived(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"likes": likes},
	})
}

// GetVisitsReceived lists users who viewed the authenticated user's profile
func (h *HistoryHandler) GetVisitsReceived(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := historyPagination(c)
	visits, err := h.stores.Visits().ListVisitsReceived(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"visits": visits},
	})
}
