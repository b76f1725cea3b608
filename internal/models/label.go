package models

import "fmt"

type Label struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	BoardID uint64 `gorm:"not null;index" json:"board"`
	Title   string `gorm:"type:varchar(32);not null" json:"title"`
	Color   string `gorm:"type:varchar(18);not null" json:"color"`

	// Relations
	Board *Board `gorm:"foreignKey:BoardID" json:"-"`
}

func (l Label) String() string {
	if l.Board != nil {
		return fmt.Sprintf("%s: %s", l.Board.Title, l.Title)
	}
	return l.Title
}
