package handlers

import (
	"net/http"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// SearchHandler handles advanced profile search requests
type SearchHandler struct {
	recommendService *services.RecommendService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(recommendService *services.RecommendService) *SearchHandler {
	return &SearchHandler{recommendService: recommendService}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.SearchProfiles)
}

// SearchProfiles searches profiles by age, fame, distance and interests
func (h *SearchHandler) SearchProfiles(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var filters models.SearchFilters
	if err := c.Bind(&filters); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&filters); err != nil {
		return err
	}

	profiles, err := h.recommendService.SearchProfiles(c.Request().Context(), currentUserID, filters)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"profiles": profiles},
	})
}
