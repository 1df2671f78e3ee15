package handlers

import (
	"net/http"
	"strconv"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/labstack/echo/v4"
)

// MatchHandler handles swipe, like and match HTTP requests
type MatchHandler struct {
	matchService     *services.MatchService
	recommendService *services.RecommendService
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(matchService *services.MatchService, recommendService *services.RecommendService) *MatchHandler {
	return &MatchHandler{
		matchService:     matchService,
		recommendService: recommendService,
	}
}

// RegisterMatchRoutes registers matching-related routes
func (h *MatchHandler) RegisterMatchRoutes(g *echo.Group) {
	g.GET("/match/profiles", h.GetCandidates)
	g.GET("/match", h.GetMatches)
	g.POST("/match/swipe-left/:userId", h.SwipeLeft)
	g.POST("/match/swipe-right/:userId", h.SwipeRight)
	g.POST("/match/like/:userId", h.Like)
	g.DELETE("/match/unlike/:userId", h.Unlike)
	g.DELETE("/match/unmatch/:userId", h.Unmatch)
}

// GetCandidates returns suggested profiles for the authenticated user
func (h *MatchHandler) GetCandidates(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var filters models.CandidateFilters
	if err := c.Bind(&filters); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&filters); err != nil {
		return err
	}

	candidates, err := h.recommendService.GetCandidates(c.Request().Context(), currentUserID, filters)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"profiles": candidates},
	})
}

// GetMatches returns the authenticated user's matches
func (h *MatchHandler) GetMatches(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	matches, err := h.matchService.GetUserMatches(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"matches": matches},
	})
}

// SwipeLeft records a dislike of the target profile
func (h *MatchHandler) SwipeLeft(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	receiverID, err := targetUserID(c)
	if err != nil {
		return err
	}
	if receiverID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot swipe on yourself")
	}

	if err := h.matchService.SwipeLeft(c.Request().Context(), currentUserID, receiverID); err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Profile disliked"})
}

// SwipeRight records a like of the target profile and reports whether
// it produced a match
func (h *MatchHandler) SwipeRight(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	receiverID, err := targetUserID(c)
	if err != nil {
		return err
	}
	if receiverID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot swipe on yourself")
	}

	matched, err := h.matchService.SwipeRight(c.Request().Context(), currentUserID, receiverID)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile liked",
		"data":    echo.Map{"matched": matched},
	})
}

// Like likes a profile outside the swipe deck, for example from search
// results or a visit notification
func (h *MatchHandler) Like(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	receiverID, err := targetUserID(c)
	if err != nil {
		return err
	}
	if receiverID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot like yourself")
	}

	matched, err := h.matchService.LikeUser(c.Request().Context(), currentUserID, receiverID)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile liked",
		"data":    echo.Map{"matched": matched},
	})
}

// Unlike withdraws a like that has not become a match
func (h *MatchHandler) Unlike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	receiverID, err := targetUserID(c)
	if err != nil {
		return err
	}

	if err := h.matchService.UnlikeUser(c.Request().Context(), currentUserID, receiverID); err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Like removed"})
}

// Unmatch dissolves an existing match
func (h *MatchHandler) Unmatch(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	receiverID, err := targetUserID(c)
	if err != nil {
		return err
	}

	if err := h.matchService.UnmatchUser(c.Request().Context(), currentUserID, receiverID); err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Match removed"})
}
