package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// ListBoards returns every board with its columns and cards
func (h *BoardHandler) ListBoards(c *gin.Context) {
	boards, err := h.boardService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardDTOs(boards))
}

// CreateBoard creates a new board
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.BoardRequest
	if !bindRequest(c, &req) {
		return
	}

	board, err := h.boardService.Create(services.BoardInput{
		Title:     *req.Title,
		CreatedBy: *req.CreatedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// GetBoard returns a board with its columns and cards
// Board is already checked by RequireBoard middleware
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	full, err := h.boardService.Get(board.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardDTO(*full))
}

// UpdateBoard replaces a board's title and creator
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	var req dto.BoardRequest
	if !bindRequest(c, &req) {
		return
	}

	updated, err := h.boardService.Replace(board.ID, services.BoardInput{
		Title:     *req.Title,
		CreatedBy: *req.CreatedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardDTO(*updated))
}

// DeleteBoard deletes a board and everything on it
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	if err := h.boardService.Delete(board.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
