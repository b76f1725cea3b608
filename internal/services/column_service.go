package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

// ColumnService handles column business logic. Columns are addressed by
// their position within a board.
type ColumnService struct {
	columnRepo repository.ColumnRepository
}

// NewColumnService creates a new ColumnService
func NewColumnService(columnRepo repository.ColumnRepository) *ColumnService {
	return &ColumnService{columnRepo: columnRepo}
}

// ColumnInput represents the writable fields of a column. Nil optional
// fields take their default on create and keep their value on update.
type ColumnInput struct {
	Title       string
	Position    *int
	HeaderColor *string
}

func validateColumn(input ColumnInput) (ColumnInput, error) {
	errs := &ValidationError{}
	input.Title = cleanText(errs, "title", input.Title, constants.MaxColumnTitleLength)
	if input.HeaderColor != nil {
		checkColor(errs, "header_color", *input.HeaderColor)
	}
	return input, errs.OrNil()
}

// List returns the columns of a board ordered by position
func (s *ColumnService) List(boardID uint64) ([]models.Column, error) {
	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// Create adds a column to a board
func (s *ColumnService) Create(boardID uint64, input ColumnInput) (*models.Column, error) {
	input, err := validateColumn(input)
	if err != nil {
		return nil, err
	}

	column := &models.Column{
		BoardID:     boardID,
		Title:       input.Title,
		Position:    constants.DefaultColumnPosition,
		HeaderColor: constants.DefaultColumnHeaderColor,
		Cards:       []models.Card{},
	}
	if input.Position != nil {
		column.Position = *input.Position
	}
	if input.HeaderColor != nil {
		column.HeaderColor = *input.HeaderColor
	}

	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return column, nil
}

// Get returns the column at position on a board
func (s *ColumnService) Get(boardID uint64, position int) (*models.Column, error) {
	column, err := s.columnRepo.FindByBoardAndPosition(boardID, position)
	return column, columnLookupError(err)
}

// GetByID returns a column by ID
func (s *ColumnService) GetByID(id uint64) (*models.Column, error) {
	column, err := s.columnRepo.FindByID(id)
	return column, columnLookupError(err)
}

// Replace overwrites the column at position on a board
func (s *ColumnService) Replace(boardID uint64, position int, input ColumnInput) (*models.Column, error) {
	column, err := s.Get(boardID, position)
	if err != nil {
		return nil, err
	}
	return s.Update(column, input)
}

// Update applies input to a loaded column
func (s *ColumnService) Update(column *models.Column, input ColumnInput) (*models.Column, error) {
	input, err := validateColumn(input)
	if err != nil {
		return nil, err
	}

	column.Title = input.Title
	if input.Position != nil {
		column.Position = *input.Position
	}
	if input.HeaderColor != nil {
		column.HeaderColor = *input.HeaderColor
	}

	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return column, nil
}

// Delete removes the column at position on a board together with its cards
func (s *ColumnService) Delete(boardID uint64, position int) error {
	column, err := s.Get(boardID, position)
	if err != nil {
		return err
	}
	return s.Remove(column)
}

// Remove deletes a loaded column together with its cards
func (s *ColumnService) Remove(column *models.Column) error {
	if err := s.columnRepo.Delete(column.ID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}

func columnLookupError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrColumnNotFound
	}
	return fmt.Errorf("failed to find column: %w", err)
}
