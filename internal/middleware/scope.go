package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// ParseID reads a numeric path parameter. Anything that is not a
// non-negative integer is answered with 404, since no such resource exists.
func ParseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// RequireBoard loads the board named by :board_id into the context
func RequireBoard(boards *services.BoardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		boardID, ok := ParseID(c, "board_id")
		if !ok {
			return
		}

		board, err := boards.Find(boardID)
		if err != nil {
			if errors.Is(err, services.ErrBoardNotFound) {
				apierrors.NotFound(c, "")
				return
			}
			log.Error().Err(err).Uint64("board_id", boardID).Msg("board lookup failed")
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyBoard, board)
		c.Next()
	}
}

// RequireCard loads the card named by :card_id on the board already in context
func RequireCard(cards *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		board, ok := GetBoard(c)
		if !ok {
			apierrors.InternalError(c, "Board not found in context")
			return
		}

		cardID, ok := ParseID(c, "card_id")
		if !ok {
			return
		}

		card, err := cards.Get(board.ID, cardID)
		if err != nil {
			if errors.Is(err, services.ErrCardNotFound) {
				apierrors.NotFound(c, "")
				return
			}
			log.Error().Err(err).Uint64("card_id", cardID).Msg("card lookup failed")
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyCard, card)
		c.Next()
	}
}

// GetBoard retrieves the board loaded by RequireBoard
func GetBoard(c *gin.Context) (*models.Board, bool) {
	v, exists := c.Get(constants.ContextKeyBoard)
	if !exists {
		return nil, false
	}
	board, ok := v.(*models.Board)
	return board, ok
}

// GetCard retrieves the card loaded by RequireCard
func GetCard(c *gin.Context) (*models.Card, bool) {
	v, exists := c.Get(constants.ContextKeyCard)
	if !exists {
		return nil, false
	}
	card, ok := v.(*models.Card)
	return card, ok
}
