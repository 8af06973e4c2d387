package models

import "time"

type Organization struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      *string   `gorm:"type:varchar(255)" json:"slug"`
	Logo      *string   `gorm:"type:varchar(512)" json:"logo"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Members []Member `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Forms   []Form   `gorm:"foreignKey:OrganizationID" json:"forms,omitempty"`
}
