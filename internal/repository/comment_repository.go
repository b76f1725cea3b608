package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit("Card", "CreatedBy", "UpdatedBy").Create(comment).Error
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Card").Preload("CreatedBy").Preload("UpdatedBy").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindInCard finds a comment by ID on a card
func (r *GormCommentRepository) FindInCard(cardID, id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("card_id = ?", cardID).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByCard lists the comments of a card
func (r *GormCommentRepository) ListByCard(cardID uint64) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.Where("card_id = ?", cardID).Order("id").Find(&comments).Error
	return comments, err
}

// Search lists comments whose message contains the query
func (r *GormCommentRepository) Search(filter ListFilter) ([]models.Comment, int64, error) {
	comments := []models.Comment{}
	query := r.db.Model(&models.Comment{}).Scopes(database.TitleSearch("message", filter.Query))
	total, err := findPage(query, filter, &comments, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Card").Order("id DESC")
	})
	return comments, total, err
}

// Update saves a comment
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Model(comment).
		Select("message", "updated_at", "created_by_id", "updated_by_id").
		Updates(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// Count counts all comments
func (r *GormCommentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}
