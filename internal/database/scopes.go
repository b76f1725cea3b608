package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/kanban-board-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// TitleSearch filters on a case-insensitive substring of column when q is set
func TitleSearch(column, q string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(q)+"%")
	}
}
