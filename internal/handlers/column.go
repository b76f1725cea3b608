package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// ColumnHandler serves the columns of the board in context. Columns are
// addressed by position rather than ID.
type ColumnHandler struct {
	columnService *services.ColumnService
}

func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

func columnInput(req dto.ColumnRequest) services.ColumnInput {
	return services.ColumnInput{
		Title:       *req.Title,
		Position:    req.Position,
		HeaderColor: req.HeaderColor,
	}
}

func (h *ColumnHandler) ListColumns(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	columns, err := h.columnService.List(board.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToColumnDTOs(columns))
}

func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	var req dto.ColumnRequest
	if !bindRequest(c, &req) {
		return
	}

	column, err := h.columnService.Create(board.ID, columnInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

func (h *ColumnHandler) GetColumn(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		return
	}

	column, err := h.columnService.Get(board.ID, position)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		return
	}

	// Resolve the column before validating so a bad position is a 404
	column, err := h.columnService.Get(board.ID, position)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req dto.ColumnRequest
	if !bindRequest(c, &req) {
		return
	}

	updated, err := h.columnService.Update(column, columnInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToColumnDTO(*updated))
}

func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		return
	}

	if err := h.columnService.Delete(board.ID, position); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
