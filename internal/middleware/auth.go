package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reviewdesk/form-review-api/internal/constants"
	"github.com/reviewdesk/form-review-api/internal/database"
	apierrors "github.com/reviewdesk/form-review-api/internal/errors"
	"github.com/reviewdesk/form-review-api/internal/models"
)

const contextKeyUser = "current_user"

// RequireAuth checks the session and resolves the authenticated user.
// Validation happens once per inbound request; nothing is cached across
// requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok || userID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Where("id = ?", userID).First(&user).Error; err != nil {
			apierrors.Unauthorized(c, "Session user no longer exists")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(contextKeyUser, &user)

		if orgID, ok := session.Get(constants.ContextKeyActiveOrgID).(string); ok && orgID != "" {
			c.Set(constants.ContextKeyActiveOrgID, orgID)
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// GetUser retrieves the resolved user record from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// GetActiveOrganizationID retrieves the session's active organization
func GetActiveOrganizationID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyActiveOrgID)
	if !exists {
		return "", false
	}

	orgID, ok := value.(string)
	if !ok || orgID == "" {
		return "", false
	}
	return orgID, true
}
