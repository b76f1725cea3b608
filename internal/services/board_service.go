package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

// BoardService handles board business logic
type BoardService struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
}

// NewBoardService creates a new BoardService
func NewBoardService(boardRepo repository.BoardRepository, userRepo repository.UserRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// BoardInput represents the writable fields of a board
type BoardInput struct {
	Title     string
	CreatedBy uint64
}

func (s *BoardService) validate(input BoardInput) (BoardInput, error) {
	errs := &ValidationError{}
	input.Title = cleanText(errs, "title", input.Title, constants.MaxBoardTitleLength)
	if err := checkUsers(errs, s.userRepo, "created_by", []uint64{input.CreatedBy}); err != nil {
		return input, err
	}
	return input, errs.OrNil()
}

// List returns every board with nested columns and cards
func (s *BoardService) List() ([]models.Board, error) {
	boards, err := s.boardRepo.ListWithColumns()
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// Create creates a board
func (s *BoardService) Create(input BoardInput) (*models.Board, error) {
	input, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	board := &models.Board{
		Title:       input.Title,
		CreatedByID: input.CreatedBy,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// Get returns a board with nested columns and cards
func (s *BoardService) Get(id uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindWithColumns(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// Replace overwrites a board's fields
func (s *BoardService) Replace(id uint64, input BoardInput) (*models.Board, error) {
	board, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Update(board, input)
}

// Update applies input to a loaded board
func (s *BoardService) Update(board *models.Board, input BoardInput) (*models.Board, error) {
	input, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	board.Title = input.Title
	board.CreatedByID = input.CreatedBy
	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// Delete removes a board and everything on it
func (s *BoardService) Delete(id uint64) error {
	if _, err := s.boardRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}
	if err := s.boardRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// Find returns a board without its columns
func (s *BoardService) Find(id uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}
