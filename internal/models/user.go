package models

import (
	"time"
)

type PlatformRole string

const (
	PlatformRoleUser  PlatformRole = "user"
	PlatformRoleAdmin PlatformRole = "admin"
)

type User struct {
	ID           string       `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	Role         PlatformRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	Memberships []Member `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user carries the platform-wide admin role.
func (u *User) IsAdmin() bool {
	return u.Role == PlatformRoleAdmin
}
