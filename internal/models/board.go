package models

// Board is the top-level container for a project's columns, labels and cards.
type Board struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	CreatedByID uint64 `gorm:"not null;index" json:"created_by"`

	// Relations
	CreatedBy User     `gorm:"foreignKey:CreatedByID" json:"-"`
	Columns   []Column `gorm:"foreignKey:BoardID" json:"column_set,omitempty"`
	Labels    []Label  `gorm:"foreignKey:BoardID" json:"-"`
	Cards     []Card   `gorm:"foreignKey:BoardID" json:"-"`
}

func (b Board) String() string {
	return b.Title
}
