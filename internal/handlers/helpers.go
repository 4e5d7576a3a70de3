package handlers

import (
	"notification-center/internal/models"
	"notification-center/internal/repositories"

	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user id from JWT claims
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// resolveActor loads the authenticated user's display snapshot. Returns nil
// when the user row is gone; the notification is then stored without a doer.
func resolveActor(userRepo repositories.UserRepository, userID uint) *models.Actor {
	user, err := userRepo.GetUserByID(userID)
	if err != nil {
		return nil
	}
	return user.ToActor()
}
