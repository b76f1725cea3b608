package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"gorm.io/gorm"
)

// findPage counts the rows matched by base, then loads the requested page
// into dest. load adds preloads and ordering to the page query only.
func findPage(base *gorm.DB, filter ListFilter, dest interface{}, load func(*gorm.DB) *gorm.DB) (int64, error) {
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}

	query := load(base)
	if filter.Pagination.Limit > 0 {
		query = query.Scopes(database.Paginate(filter.Pagination))
	}
	if err := query.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

// preloadCardRelations loads what a serialized card needs. prefix is the
// association path to the cards, e.g. "Columns.Cards.".
func preloadCardRelations(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix+"Assignees", orderByID).
		Preload(prefix+"Labels", orderByID).
		Preload(prefix+"Comments", orderByID)
}

// deleteCardChildren removes the comments and link rows of the cards matched
// by cond, a condition on card_id with one placeholder.
func deleteCardChildren(tx *gorm.DB, cond string, arg uint64) error {
	if err := tx.Exec("DELETE FROM comments WHERE "+cond, arg).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM card_assignees WHERE "+cond, arg).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM card_labels WHERE "+cond, arg).Error
}
