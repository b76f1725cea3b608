package models

import (
	"strings"
	"time"
)

// Card is a unit of work. A card without a column sits outside every lane.
type Card struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	BoardID     uint64     `gorm:"not null;index" json:"board"`
	ColumnID    *uint64    `gorm:"index" json:"column"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	CreatedByID uint64     `gorm:"not null;index" json:"created_by"`

	// Relations
	Board     *Board    `gorm:"foreignKey:BoardID" json:"-"`
	Column    *Column   `gorm:"foreignKey:ColumnID" json:"-"`
	CreatedBy User      `gorm:"foreignKey:CreatedByID" json:"-"`
	Assignees []User    `gorm:"many2many:card_assignees;" json:"assignees,omitempty"`
	Labels    []Label   `gorm:"many2many:card_labels;" json:"labels,omitempty"`
	Comments  []Comment `gorm:"foreignKey:CardID" json:"comment_set,omitempty"`
}

func (c Card) String() string {
	if c.Column != nil {
		return c.Column.Title + ": " + c.Title
	}
	return c.Title
}

// ShortDescription is the description cut to 100 characters for list views.
func (c Card) ShortDescription() string {
	return Truncate(c.Description, 100)
}

// AssigneeNames joins the usernames of the preloaded assignees.
func (c Card) AssigneeNames() string {
	names := make([]string, len(c.Assignees))
	for i, u := range c.Assignees {
		names[i] = u.Username
	}
	return strings.Join(names, ", ")
}

// LabelTitles joins the titles of the preloaded labels.
func (c Card) LabelTitles() string {
	titles := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		titles[i] = l.Title
	}
	return strings.Join(titles, ", ")
}
