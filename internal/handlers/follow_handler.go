package handlers

import (
	"net/http"
	"strconv"

	"notification-center/internal/repositories"

	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests for resources
type FollowHandler struct {
	followerRepository repositories.FollowerRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followerRepo repositories.FollowerRepository) *FollowHandler {
	return &FollowHandler{followerRepository: followerRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/resources/:class/:id/follow", h.FollowResource)
	g.DELETE("/resources/:class/:id/follow", h.UnfollowResource)
	g.GET("/resources/:class/:id/follow", h.GetFollowerRelation)
}

func resourceParams(c echo.Context) (uint, string, error) {
	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "Invalid resource ID")
	}
	resourceClass := c.Param("class")
	if resourceClass == "" {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "Missing resource class")
	}
	return uint(resourceID), resourceClass, nil
}

// FollowResource starts following a resource
func (h *FollowHandler) FollowResource(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	resourceID, resourceClass, err := resourceParams(c)
	if err != nil {
		return err
	}

	relation, err := h.followerRepository.Follow(currentUserID, resourceID, resourceClass)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"relation": relation}})
}

// UnfollowResource stops following a resource
func (h *FollowHandler) UnfollowResource(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	resourceID, resourceClass, err := resourceParams(c)
	if err != nil {
		return err
	}

	relation, err := h.followerRepository.Unfollow(currentUserID, resourceID, resourceClass)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if relation == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not following this resource")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"relation": relation}})
}

// GetFollowerRelation returns the caller's follow relation for a resource
func (h *FollowHandler) GetFollowerRelation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	resourceID, resourceClass, err := resourceParams(c)
	if err != nil {
		return err
	}

	relation, err := h.followerRepository.GetFollowerResource(currentUserID, resourceID, resourceClass)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if relation == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not following this resource")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"relation": relation}})
}
