package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

// LabelService handles label business logic
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{labelRepo: labelRepo}
}

// LabelInput represents the writable fields of a label
type LabelInput struct {
	Title string
	Color *string
}

func validateLabel(input LabelInput) (LabelInput, error) {
	errs := &ValidationError{}
	input.Title = cleanText(errs, "title", input.Title, constants.MaxLabelTitleLength)
	if input.Color != nil {
		checkColor(errs, "color", *input.Color)
	}
	return input, errs.OrNil()
}

// List returns the labels of a board
func (s *LabelService) List(boardID uint64) ([]models.Label, error) {
	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// Create adds a label to a board
func (s *LabelService) Create(boardID uint64, input LabelInput) (*models.Label, error) {
	input, err := validateLabel(input)
	if err != nil {
		return nil, err
	}

	label := &models.Label{
		BoardID: boardID,
		Title:   input.Title,
		Color:   constants.DefaultLabelColor,
	}
	if input.Color != nil {
		label.Color = *input.Color
	}

	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// Get returns a label of a board
func (s *LabelService) Get(boardID, id uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindInBoard(boardID, id)
	return label, labelLookupError(err)
}

// GetByID returns a label by ID
func (s *LabelService) GetByID(id uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(id)
	return label, labelLookupError(err)
}

// Replace overwrites a label of a board
func (s *LabelService) Replace(boardID, id uint64, input LabelInput) (*models.Label, error) {
	label, err := s.Get(boardID, id)
	if err != nil {
		return nil, err
	}
	return s.Update(label, input)
}

// Update applies input to a loaded label
func (s *LabelService) Update(label *models.Label, input LabelInput) (*models.Label, error) {
	input, err := validateLabel(input)
	if err != nil {
		return nil, err
	}

	label.Title = input.Title
	if input.Color != nil {
		label.Color = *input.Color
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return label, nil
}

// Delete removes a label of a board
func (s *LabelService) Delete(boardID, id uint64) error {
	label, err := s.Get(boardID, id)
	if err != nil {
		return err
	}
	return s.Remove(label)
}

// Remove deletes a loaded label and detaches it from cards
func (s *LabelService) Remove(label *models.Label) error {
	if err := s.labelRepo.Delete(label.ID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func labelLookupError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLabelNotFound
	}
	return fmt.Errorf("failed to find label: %w", err)
}
