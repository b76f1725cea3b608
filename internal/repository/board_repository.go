package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

func (r *GormBoardRepository) withColumns() *gorm.DB {
	query := r.db.
		Preload("Columns", orderByPosition).
		Preload("Columns.Cards", orderByID)
	return preloadCardRelations(query, "Columns.Cards.")
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Omit("Columns", "Labels", "Cards", "CreatedBy").Create(board).Error
}

// FindByID finds a board without relations
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindWithColumns finds a board with its nested columns and cards
func (r *GormBoardRepository) FindWithColumns(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.withColumns().First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListWithColumns lists all boards with nested columns and cards
func (r *GormBoardRepository) ListWithColumns() ([]models.Board, error) {
	boards := []models.Board{}
	err := r.withColumns().Order("id").Find(&boards).Error
	return boards, err
}

// Search lists boards whose title contains the query
func (r *GormBoardRepository) Search(filter ListFilter) ([]models.Board, int64, error) {
	boards := []models.Board{}
	query := r.db.Model(&models.Board{}).Scopes(database.TitleSearch("title", filter.Query))
	total, err := findPage(query, filter, &boards, func(db *gorm.DB) *gorm.DB {
		return db.Preload("CreatedBy").Preload("Columns").Preload("Columns.Cards").Preload("Columns.Cards.Comments").Order("id")
	})
	return boards, total, err
}

// Update saves a board's own fields
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Model(board).Select("title", "created_by_id").Updates(board).Error
}

// Delete deletes a board with its cards, columns and labels
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCardChildren(tx, "card_id IN (SELECT id FROM cards WHERE board_id = ?)", id); err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Column{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM card_labels WHERE label_id IN (SELECT id FROM labels WHERE board_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Label{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, id).Error
	})
}

// Count counts all boards
func (r *GormBoardRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Board{}).Count(&count).Error
	return count, err
}
