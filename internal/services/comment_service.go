package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/kanban-board-api/internal/dto"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

const timestampFormatMessage = "Datetime has wrong format. Use one of these formats instead: " +
	"YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."

// CommentService handles comment business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// CommentInput represents the writable fields of a comment. The *Set flags
// tell an explicit null apart from an absent field; absent fields keep their
// value on update.
type CommentInput struct {
	Message      string
	CreatedBy    uint64
	UpdatedAtSet bool
	UpdatedAt    *string
	UpdatedBySet bool
	UpdatedBy    *uint64
}

type cleanComment struct {
	message   string
	updatedAt *time.Time
}

func (s *CommentService) validate(input CommentInput) (cleanComment, error) {
	errs := &ValidationError{}
	out := cleanComment{}
	out.message = cleanText(errs, "message", input.Message, 0)

	if input.UpdatedAt != nil {
		t, err := dto.ParseTimestamp(*input.UpdatedAt)
		if err != nil {
			errs.Add("updated_at", timestampFormatMessage)
		} else {
			out.updatedAt = &t
		}
	}

	if err := checkUsers(errs, s.userRepo, "created_by", []uint64{input.CreatedBy}); err != nil {
		return out, err
	}
	if input.UpdatedBy != nil {
		if err := checkUsers(errs, s.userRepo, "updated_by", []uint64{*input.UpdatedBy}); err != nil {
			return out, err
		}
	}
	return out, errs.OrNil()
}

// List returns the comments of a card
func (s *CommentService) List(cardID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Create adds a comment to a card
func (s *CommentService) Create(cardID uint64, input CommentInput) (*models.Comment, error) {
	clean, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		CardID:      cardID,
		Message:     clean.message,
		UpdatedAt:   clean.updatedAt,
		CreatedByID: input.CreatedBy,
		UpdatedByID: input.UpdatedBy,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// Get returns a comment of a card
func (s *CommentService) Get(cardID, id uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindInCard(cardID, id)
	return comment, commentLookupError(err)
}

// GetByID returns a comment by ID
func (s *CommentService) GetByID(id uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(id)
	return comment, commentLookupError(err)
}

// Replace overwrites a comment of a card
func (s *CommentService) Replace(cardID, id uint64, input CommentInput) (*models.Comment, error) {
	comment, err := s.Get(cardID, id)
	if err != nil {
		return nil, err
	}
	return s.Update(comment, input)
}

// Update applies input to a loaded comment
func (s *CommentService) Update(comment *models.Comment, input CommentInput) (*models.Comment, error) {
	clean, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	comment.Message = clean.message
	comment.CreatedByID = input.CreatedBy
	if input.UpdatedAtSet {
		comment.UpdatedAt = clean.updatedAt
	}
	if input.UpdatedBySet {
		comment.UpdatedByID = input.UpdatedBy
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment of a card
func (s *CommentService) Delete(cardID, id uint64) error {
	comment, err := s.Get(cardID, id)
	if err != nil {
		return err
	}
	return s.Remove(comment)
}

// Remove deletes a loaded comment
func (s *CommentService) Remove(comment *models.Comment) error {
	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func commentLookupError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	return fmt.Errorf("failed to find comment: %w", err)
}
