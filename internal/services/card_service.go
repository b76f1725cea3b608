package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoCardsSuggested     = errors.New("AI did not suggest any cards")
	ErrAINoValidCards         = errors.New("no valid cards could be built from AI output")
)

// CardService handles card business logic
type CardService struct {
	cardRepo   repository.CardRepository
	columnRepo repository.ColumnRepository
	labelRepo  repository.LabelRepository
	userRepo   repository.UserRepository
	aiService  *AIService
}

// NewCardService creates a new CardService. aiService may be nil.
func NewCardService(
	cardRepo repository.CardRepository,
	columnRepo repository.ColumnRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
	aiService *AIService,
) *CardService {
	return &CardService{
		cardRepo:   cardRepo,
		columnRepo: columnRepo,
		labelRepo:  labelRepo,
		userRepo:   userRepo,
		aiService:  aiService,
	}
}

// CardInput represents the writable fields of a card.
// ColumnSet tells an explicit null column apart from an absent one. Nil
// Labels or Assignees keep the current links on update.
type CardInput struct {
	Title       string
	Description string
	CreatedBy   uint64
	ColumnSet   bool
	ColumnID    *uint64
	Labels      []uint64
	Assignees   []uint64
}

func (s *CardService) validate(boardID uint64, input CardInput) (CardInput, error) {
	errs := &ValidationError{}
	input.Title = cleanText(errs, "title", input.Title, constants.MaxCardTitleLength)
	input.Description = cleanText(errs, "description", input.Description, 0)
	input.Labels = uniqueIDs(input.Labels)
	input.Assignees = uniqueIDs(input.Assignees)

	if err := checkUsers(errs, s.userRepo, "created_by", []uint64{input.CreatedBy}); err != nil {
		return input, err
	}
	if err := checkUsers(errs, s.userRepo, "assignees", input.Assignees); err != nil {
		return input, err
	}

	if input.ColumnID != nil {
		if _, err := s.columnRepo.FindInBoard(boardID, *input.ColumnID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return input, fmt.Errorf("failed to find column: %w", err)
			}
			errs.Add("column", invalidPK(*input.ColumnID))
		}
	}

	if len(input.Labels) > 0 {
		labels, err := s.labelRepo.FindByIDsInBoard(boardID, input.Labels)
		if err != nil {
			return input, fmt.Errorf("failed to look up labels: %w", err)
		}
		found := make(map[uint64]bool, len(labels))
		for _, l := range labels {
			found[l.ID] = true
		}
		for _, id := range input.Labels {
			if !found[id] {
				errs.Add("labels", invalidPK(id))
				break
			}
		}
	}

	return input, errs.OrNil()
}

// List returns the cards of a board
func (s *CardService) List(boardID uint64) ([]models.Card, error) {
	cards, err := s.cardRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Create adds a card to a board
func (s *CardService) Create(boardID uint64, input CardInput) (*models.Card, error) {
	input, err := s.validate(boardID, input)
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		BoardID:     boardID,
		ColumnID:    input.ColumnID,
		Title:       input.Title,
		Description: input.Description,
		CreatedByID: input.CreatedBy,
	}
	if err := s.cardRepo.Create(card, input.Labels, input.Assignees); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

// Get returns a card of a board with its relations
func (s *CardService) Get(boardID, id uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindInBoard(boardID, id)
	return card, cardLookupError(err)
}

// GetByID returns a card by ID with its relations
func (s *CardService) GetByID(id uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(id)
	return card, cardLookupError(err)
}

// Replace overwrites a card of a board
func (s *CardService) Replace(boardID, id uint64, input CardInput) (*models.Card, error) {
	card, err := s.Get(boardID, id)
	if err != nil {
		return nil, err
	}
	return s.Update(card, input)
}

// Update applies input to a loaded card and stamps updated_at
func (s *CardService) Update(card *models.Card, input CardInput) (*models.Card, error) {
	if !input.ColumnSet {
		input.ColumnID = card.ColumnID
	}
	input, err := s.validate(card.BoardID, input)
	if err != nil {
		return nil, err
	}

	labels := input.Labels
	if labels == nil {
		labels = labelIDs(card.Labels)
	}
	assignees := input.Assignees
	if assignees == nil {
		assignees = userIDs(card.Assignees)
	}

	now := time.Now().UTC()
	card.Title = input.Title
	card.Description = input.Description
	card.CreatedByID = input.CreatedBy
	card.ColumnID = input.ColumnID
	card.UpdatedAt = &now

	if err := s.cardRepo.Update(card, labels, assignees); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return card, nil
}

// Delete removes a card of a board with its comments
func (s *CardService) Delete(boardID, id uint64) error {
	card, err := s.Get(boardID, id)
	if err != nil {
		return err
	}
	return s.Remove(card)
}

// Remove deletes a loaded card with its comments
func (s *CardService) Remove(card *models.Card) error {
	if err := s.cardRepo.Delete(card.ID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// SuggestCards asks the AI service for card drafts based on free text. The
// board's label titles are offered to the model; nothing is stored.
func (s *CardService) SuggestCards(ctx context.Context, boardID uint64, text string) ([]SuggestedCard, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	titles := make([]string, len(labels))
	known := make(map[string]string, len(labels))
	for i, l := range labels {
		titles[i] = l.Title
		known[strings.ToLower(l.Title)] = l.Title
	}

	suggested, err := s.aiService.SuggestCards(ctx, titles, text)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest cards: %w", err)
	}

	if len(suggested) == 0 {
		return nil, ErrAINoCardsSuggested
	}
	if len(suggested) > constants.MaxAISuggestedCards {
		suggested = suggested[:constants.MaxAISuggestedCards]
	}

	valid := make([]SuggestedCard, 0, len(suggested))
	for _, card := range suggested {
		card.Title = strings.TrimSpace(card.Title)
		if card.Title == "" {
			continue
		}
		if len([]rune(card.Title)) > constants.MaxCardTitleLength {
			card.Title = models.Truncate(card.Title, constants.MaxCardTitleLength)
		}

		// Keep only labels that exist on the board, in their stored spelling
		matched := make([]string, 0, len(card.Labels))
		for _, l := range card.Labels {
			if title, ok := known[strings.ToLower(strings.TrimSpace(l))]; ok {
				matched = append(matched, title)
			}
		}
		card.Labels = matched

		valid = append(valid, card)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidCards
	}
	return valid, nil
}

func cardLookupError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCardNotFound
	}
	return fmt.Errorf("failed to find card: %w", err)
}

func labelIDs(labels []models.Label) []uint64 {
	ids := make([]uint64, len(labels))
	for i, l := range labels {
		ids[i] = l.ID
	}
	return ids
}

func userIDs(users []models.User) []uint64 {
	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
