package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

func (r *GormColumnRepository) withCards() *gorm.DB {
	return preloadCardRelations(r.db.Preload("Cards", orderByID), "Cards.")
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Omit("Board", "Cards").Create(column).Error
}

// FindByID finds a column with its cards
func (r *GormColumnRepository) FindByID(id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.withCards().Preload("Board").First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindByBoardAndPosition finds the column at position with the lowest ID.
// Positions are not unique within a board.
func (r *GormColumnRepository) FindByBoardAndPosition(boardID uint64, position int) (*models.Column, error) {
	var column models.Column
	if err := r.withCards().
		Where("board_id = ? AND position = ?", boardID, position).
		First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindInBoard finds a column by ID on a board
func (r *GormColumnRepository) FindInBoard(boardID, id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.Where("board_id = ?", boardID).First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListByBoard lists the columns of a board ordered by position
func (r *GormColumnRepository) ListByBoard(boardID uint64) ([]models.Column, error) {
	columns := []models.Column{}
	err := r.withCards().
		Where("board_id = ?", boardID).
		Order("position, id").
		Find(&columns).Error
	return columns, err
}

// Search lists columns whose title contains the query
func (r *GormColumnRepository) Search(filter ListFilter) ([]models.Column, int64, error) {
	columns := []models.Column{}
	query := r.db.Model(&models.Column{}).Scopes(database.TitleSearch("title", filter.Query))
	total, err := findPage(query, filter, &columns, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Board").Preload("Cards").Preload("Cards.Comments").Order("board_id, position, id")
	})
	return columns, total, err
}

// Update saves a column's own fields
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Model(column).Select("title", "position", "header_color").Updates(column).Error
}

// Delete deletes a column with its cards
func (r *GormColumnRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCardChildren(tx, "card_id IN (SELECT id FROM cards WHERE column_id = ?)", id); err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Column{}, id).Error
	})
}

// Count counts all columns
func (r *GormColumnRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Column{}).Count(&count).Error
	return count, err
}
