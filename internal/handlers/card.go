package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// CardHandler serves the cards of the board in context
type CardHandler struct {
	cardService *services.CardService
}

func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// cardInput maps a bound request. An empty labels list clears the card's
// labels; assignees left out keep the stored ones.
func cardInput(req dto.CardRequest) services.CardInput {
	labels := []uint64{}
	if req.Labels != nil && *req.Labels != nil {
		labels = *req.Labels
	}
	return services.CardInput{
		Title:       *req.Title,
		Description: *req.Description,
		CreatedBy:   *req.CreatedBy,
		ColumnSet:   req.Column.Set,
		ColumnID:    req.Column.Value,
		Labels:      labels,
		Assignees:   req.Assignees,
	}
}

// ListCards returns the board's cards with assignees, labels and comments
func (h *CardHandler) ListCards(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	cards, err := h.cardService.List(board.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardDTOs(cards))
}

// CreateCard creates a card on the board. The response carries related
// objects as IDs.
func (h *CardHandler) CreateCard(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	var req dto.CardRequest
	if !bindRequest(c, &req) {
		return
	}

	card, err := h.cardService.Create(board.ID, cardInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCardWriteDTO(*card))
}

// GetCard returns the card loaded by RequireCard
func (h *CardHandler) GetCard(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardDTO(*card))
}

// UpdateCard replaces the card's fields. Column, labels and assignees left
// out of the body keep their current values.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}

	var req dto.CardRequest
	if !bindRequest(c, &req) {
		return
	}

	updated, err := h.cardService.Update(card, cardInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardWriteDTO(*updated))
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	card, ok := middleware.GetCard(c)
	if !ok {
		apierrors.InternalError(c, "Card not found in context")
		return
	}

	if err := h.cardService.Remove(card); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestCards drafts cards from free text. Drafts are returned, not saved.
func (h *CardHandler) SuggestCards(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	var req dto.SuggestCardsRequest
	if !bindRequest(c, &req) {
		return
	}

	suggested, err := h.cardService.SuggestCards(c.Request.Context(), board.ID, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrAINoCardsSuggested) || errors.Is(err, services.ErrAINoValidCards) {
			c.JSON(http.StatusOK, gin.H{"cards": []dto.SuggestedCardDTO{}})
			return
		}
		respondServiceError(c, err)
		return
	}

	cards := make([]dto.SuggestedCardDTO, len(suggested))
	for i, s := range suggested {
		labels := s.Labels
		if labels == nil {
			labels = []string{}
		}
		cards[i] = dto.SuggestedCardDTO{
			Title:       s.Title,
			Description: s.Description,
			Labels:      labels,
		}
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}
