package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

const tokenPrefix = "Token "

// TokenAuth identifies the caller from an "Authorization: Token <key>" header.
// Anonymous requests pass through unless required is set; a malformed or
// unknown token is always rejected.
func TokenAuth(users *services.UserService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				apierrors.Unauthorized(c, "Authentication credentials were not provided.")
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(header, tokenPrefix) {
			apierrors.Unauthorized(c, "Invalid token header.")
			return
		}

		user, err := users.FindByToken(strings.TrimSpace(strings.TrimPrefix(header, tokenPrefix)))
		if err != nil {
			if !errors.Is(err, services.ErrUserNotFound) {
				log.Error().Err(err).Msg("token lookup failed")
				apierrors.InternalError(c, "")
				return
			}
			apierrors.Unauthorized(c, "Invalid token.")
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
