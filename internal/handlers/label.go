package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

type LabelHandler struct {
	labelService *services.LabelService
}

func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

func (h *LabelHandler) ListLabels(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	labels, err := h.labelService.List(board.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLabelDTOs(labels))
}

func (h *LabelHandler) CreateLabel(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	var req dto.LabelRequest
	if !bindRequest(c, &req) {
		return
	}

	label, err := h.labelService.Create(board.ID, services.LabelInput{Title: *req.Title, Color: req.Color})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) GetLabel(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}
	labelID, ok := middleware.ParseID(c, "label_id")
	if !ok {
		return
	}

	label, err := h.labelService.Get(board.ID, labelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}
	labelID, ok := middleware.ParseID(c, "label_id")
	if !ok {
		return
	}

	label, err := h.labelService.Get(board.ID, labelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req dto.LabelRequest
	if !bindRequest(c, &req) {
		return
	}

	updated, err := h.labelService.Update(label, services.LabelInput{Title: *req.Title, Color: req.Color})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLabelDTO(*updated))
}

func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}
	labelID, ok := middleware.ParseID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labelService.Delete(board.ID, labelID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
