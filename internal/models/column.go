package models

import "fmt"

// Column is an ordered lane within a board. Position is used as a lookup key
// but is not unique within a board.
type Column struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	BoardID     uint64 `gorm:"not null;index:idx_columns_board_position,priority:1" json:"board"`
	Title       string `gorm:"type:varchar(32);not null" json:"title"`
	Position    int    `gorm:"not null;index:idx_columns_board_position,priority:2" json:"position"`
	HeaderColor string `gorm:"type:varchar(18);not null" json:"header_color"`

	// Relations
	Board *Board `gorm:"foreignKey:BoardID" json:"-"`
	Cards []Card `gorm:"foreignKey:ColumnID" json:"card_set,omitempty"`
}

func (c Column) String() string {
	if c.Board != nil {
		return fmt.Sprintf("%s: %s", c.Board.Title, c.Title)
	}
	return c.Title
}
