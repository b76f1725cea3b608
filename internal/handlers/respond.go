package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/validation"
)

// bindRequest binds the JSON body into req and answers 400 with field
// messages when it does not validate.
func bindRequest(c *gin.Context, req any) bool {
	if fields := validation.BindJSON(c, req); fields != nil {
		apierrors.ValidationFailed(c, fields)
		return false
	}
	return true
}

// respondServiceError maps service errors onto API responses
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Fields)
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrLabelNotFound),
		errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "Card suggestions are not configured")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

// parsePosition reads the :position parameter. Positions in paths are
// non-negative integers.
func parsePosition(c *gin.Context) (int, bool) {
	position, err := strconv.ParseUint(c.Param("position"), 10, 31)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return int(position), true
}
