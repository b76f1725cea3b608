package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/validation"
)

// AuthHandler exchanges credentials for API tokens.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// ObtainToken returns the API token of the user matching the credentials.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	type TokenRequest struct {
		Username *string `json:"username" binding:"required"`
		Password *string `json:"password" binding:"required"`
	}

	var req TokenRequest
	if !bindRequest(c, &req) {
		return
	}

	user, err := h.userService.Authenticate(*req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.ValidationFailed(c, map[string][]string{
				validation.NonFieldErrors: {"Unable to log in with provided credentials."},
			})
			return
		}
		log.Error().Err(err).Msg("token authentication failed")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": user.APIToken})
}

// GetCurrentUser returns the user identified by the request's token.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Authentication credentials were not provided.")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
