package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// CommentHandler serves the comments of the card in context
type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func commentInput(req dto.CommentRequest) services.CommentInput {
	return services.CommentInput{
		Message:      *req.Message,
		CreatedBy:    *req.CreatedBy,
		UpdatedAtSet: req.UpdatedAt.Set,
		UpdatedAt:    req.UpdatedAt.Value,
		UpdatedBySet: req.UpdatedBy.Set,
		UpdatedBy:    req.UpdatedBy.Value,
	}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}

	comments, err := h.commentService.List(card.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}

	var req dto.CommentRequest
	if !bindRequest(c, &req) {
		return
	}

	comment, err := h.commentService.Create(card.ID, commentInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}
	commentID, ok := middleware.ParseID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(card.ID, commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}
	commentID, ok := middleware.ParseID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(card.ID, commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req dto.CommentRequest
	if !bindRequest(c, &req) {
		return
	}

	updated, err := h.commentService.Update(comment, commentInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDTO(*updated))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}
	commentID, ok := middleware.ParseID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(card.ID, commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
