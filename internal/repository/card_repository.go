package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

func (r *GormCardRepository) withRelations() *gorm.DB {
	return preloadCardRelations(r.db, "")
}

// Create creates a card and links its labels and assignees
func (r *GormCardRepository) Create(card *models.Card, labelIDs, assigneeIDs []uint64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(card).Error; err != nil {
			return err
		}
		return replaceLinks(tx, card.ID, labelIDs, assigneeIDs)
	})
	if err != nil {
		return err
	}
	return r.reload(card)
}

// FindByID finds a card with its relations
func (r *GormCardRepository) FindByID(id uint64) (*models.Card, error) {
	var card models.Card
	if err := r.withRelations().Preload("Board").Preload("Column").First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindInBoard finds a card by ID on a board
func (r *GormCardRepository) FindInBoard(boardID, id uint64) (*models.Card, error) {
	var card models.Card
	if err := r.withRelations().Where("board_id = ?", boardID).First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByBoard lists the cards of a board
func (r *GormCardRepository) ListByBoard(boardID uint64) ([]models.Card, error) {
	cards := []models.Card{}
	err := r.withRelations().Where("board_id = ?", boardID).Order("id").Find(&cards).Error
	return cards, err
}

// Search lists cards whose title contains the query
func (r *GormCardRepository) Search(filter ListFilter) ([]models.Card, int64, error) {
	cards := []models.Card{}
	query := r.db.Model(&models.Card{}).Scopes(database.TitleSearch("title", filter.Query))
	total, err := findPage(query, filter, &cards, func(db *gorm.DB) *gorm.DB {
		return preloadCardRelations(db, "").Preload("Column").Order("id DESC")
	})
	return cards, total, err
}

// Update saves a card's own fields and replaces its links
func (r *GormCardRepository) Update(card *models.Card, labelIDs, assigneeIDs []uint64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(card).
			Select("column_id", "title", "description", "updated_at", "created_by_id").
			Omit(clause.Associations).
			Updates(card).Error; err != nil {
			return err
		}
		return replaceLinks(tx, card.ID, labelIDs, assigneeIDs)
	})
	if err != nil {
		return err
	}
	return r.reload(card)
}

// Delete deletes a card with its comments and links
func (r *GormCardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCardChildren(tx, "card_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.Card{}, id).Error
	})
}

// Count counts all cards
func (r *GormCardRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Card{}).Count(&count).Error
	return count, err
}

func (r *GormCardRepository) reload(card *models.Card) error {
	return r.withRelations().First(card, card.ID).Error
}

// replaceLinks rewrites the card_labels and card_assignees rows of a card
func replaceLinks(tx *gorm.DB, cardID uint64, labelIDs, assigneeIDs []uint64) error {
	if err := tx.Exec("DELETE FROM card_labels WHERE card_id = ?", cardID).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM card_assignees WHERE card_id = ?", cardID).Error; err != nil {
		return err
	}

	if len(labelIDs) > 0 {
		rows := make([]map[string]interface{}, len(labelIDs))
		for i, id := range labelIDs {
			rows[i] = map[string]interface{}{"card_id": cardID, "label_id": id}
		}
		if err := tx.Table("card_labels").Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(assigneeIDs) > 0 {
		rows := make([]map[string]interface{}, len(assigneeIDs))
		for i, id := range assigneeIDs {
			rows[i] = map[string]interface{}{"card_id": cardID, "user_id": id}
		}
		if err := tx.Table("card_assignees").Create(&rows).Error; err != nil {
			return err
		}
	}

	return nil
}
