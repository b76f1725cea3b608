package models

import "time"

type Comment struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	CardID      uint64     `gorm:"not null;index" json:"card"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	CreatedByID uint64     `gorm:"not null;index" json:"created_by"`
	UpdatedByID *uint64    `json:"updated_by"`

	// Relations
	Card      *Card `gorm:"foreignKey:CardID" json:"-"`
	CreatedBy User  `gorm:"foreignKey:CreatedByID" json:"-"`
	UpdatedBy *User `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// Summary is the message cut to 30 characters.
func (c Comment) Summary() string {
	return Truncate(c.Message, 30)
}
