package models

import "time"

// Project, Team, Role and Membership describe who works on what. They are
// managed through the admin console only.
type Project struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`
}

type Team struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	// Relations
	Memberships []Membership `gorm:"foreignKey:TeamID" json:"memberships,omitempty"`
	Projects    []Project    `gorm:"many2many:team_projects;" json:"projects,omitempty"`
}

type Role struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

// Membership places a user in a team, optionally with a role.
type Membership struct {
	TeamID    uint64    `gorm:"primarykey" json:"team_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	RoleID    *uint64   `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Team Team  `gorm:"foreignKey:TeamID" json:"-"`
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role *Role `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
}
