package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"notification-center/internal/models"
	"notification-center/internal/repositories"
	"notification-center/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	fanoutService          *services.FanoutService
	feedRenderer           *services.FeedRenderer
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	fanout *services.FanoutService,
	feed *services.FeedRenderer,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		fanoutService:          fanout,
		feedRenderer:           feed,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications/dispatch", h.Dispatch)
	g.GET("/notifications", h.GetFeed)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/viewed", h.MarkViewed)
}

// ResourceRef identifies the resource an event concerns
type ResourceRef struct {
	ID    uint   `json:"id" validate:"required"`
	Class string `json:"class" validate:"required"`
}

// DispatchNotificationRequest is the payload for creating a notification
type DispatchNotificationRequest struct {
	ActionKey       string                 `json:"action_key" validate:"required"`
	IconKey         string                 `json:"icon_key"`
	SendToFollowers bool                   `json:"send_to_followers"`
	Resource        *ResourceRef           `json:"resource"`
	IncludeUserIDs  []uint                 `json:"include_user_ids"`
	ExcludeUserIDs  []uint                 `json:"exclude_user_ids"`
	Details         map[string]interface{} `json:"details"`
}

// Dispatch creates a notification from an event and fans it out. The
// authenticated user becomes the actor and is never among the recipients.
func (h *NotificationHandler) Dispatch(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req DispatchNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &models.Event{
		Action:       req.ActionKey,
		Icon:         req.IconKey,
		ToFollowers:  req.SendToFollowers,
		IncludeIDs:   req.IncludeUserIDs,
		ExcludeIDs:   req.ExcludeUserIDs,
		EventDoer:    resolveActor(h.userRepository, currentUserID),
		EventDetails: req.Details,
	}
	if req.Resource != nil {
		event.EventResource = &models.Resource{ID: req.Resource.ID, Class: req.Resource.Class}
	}

	notification, err := h.fanoutService.CreateAndNotify(event)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if notification == nil {
		// nobody to notify, nothing was written
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"notification": notification}})
}

// GetFeed returns one rendered page of the caller's notification feed.
// Viewing a page marks every row on it as viewed.
func (h *NotificationHandler) GetFeed(c echo.Context) error {
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

	pageInfo, views, err := h.feedRenderer.RenderPage(currentUserID, page, limit)
	if err != nil {
		if errors.Is(err, repositories.ErrPageOutOfRange) {
			return echo.NewHTTPError(http.StatusNotFound, "Page not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"views": views,
		},
		"meta": echo.Map{
			"currentPage":     pageInfo.Page,
			"totalPages":      pageInfo.TotalPages,
			"totalItems":      pageInfo.TotalItems,
			"itemsPerPage":    pageInfo.PerPage,
			"hasNextPage":     pageInfo.Page < pageInfo.TotalPages,
			"hasPreviousPage": pageInfo.Page > 1,
		},
	})
}

// GetUnreadCount returns the unviewed notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notificationRepository.CountUnviewed(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkViewedRequest is the payload for marking viewer rows as viewed
type MarkViewedRequest struct {
	ViewerIDs []uint `json:"viewer_ids"`
}

// MarkViewed marks the given viewer rows as viewed
func (h *NotificationHandler) MarkViewed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req MarkViewedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.notificationRepository.MarkAsViewed(req.ViewerIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}
