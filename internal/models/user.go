package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	APIToken     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Memberships []Membership `gorm:"foreignKey:UserID" json:"-"`
}

func (u User) String() string {
	return u.Username
}
