package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Omit("Board").Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.Preload("Board").First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindInBoard finds a label by ID on a board
func (r *GormLabelRepository) FindInBoard(boardID, id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.Where("board_id = ?", boardID).First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByIDsInBoard returns the labels among ids that belong to the board
func (r *GormLabelRepository) FindByIDsInBoard(boardID uint64, ids []uint64) ([]models.Label, error) {
	labels := []models.Label{}
	if len(ids) == 0 {
		return labels, nil
	}
	err := r.db.Where("board_id = ? AND id IN ?", boardID, ids).Order("id").Find(&labels).Error
	return labels, err
}

// ListByBoard lists the labels of a board
func (r *GormLabelRepository) ListByBoard(boardID uint64) ([]models.Label, error) {
	labels := []models.Label{}
	err := r.db.Where("board_id = ?", boardID).Order("id").Find(&labels).Error
	return labels, err
}

// Search lists labels whose title contains the query
func (r *GormLabelRepository) Search(filter ListFilter) ([]models.Label, int64, error) {
	labels := []models.Label{}
	query := r.db.Model(&models.Label{}).Scopes(database.TitleSearch("title", filter.Query))
	total, err := findPage(query, filter, &labels, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Board").Order("board_id, id")
	})
	return labels, total, err
}

// Update saves a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Model(label).Select("title", "color").Updates(label).Error
}

// Delete deletes a label and removes it from every card
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM card_labels WHERE label_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Label{}, id).Error
	})
}

// Count counts all labels
func (r *GormLabelRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Label{}).Count(&count).Error
	return count, err
}
