package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationCanceled InvitationStatus = "canceled"
)

type Invitation struct {
	ID             string           `gorm:"type:varchar(36);primarykey" json:"id"`
	Email          string           `gorm:"type:varchar(255);not null" json:"email"`
	OrganizationID string           `gorm:"type:varchar(36);not null" json:"organization_id"`
	InviterID      string           `gorm:"type:varchar(36);not null" json:"inviter_id"`
	Role           MemberRole       `gorm:"type:varchar(20);not null" json:"role"`
	Status         InvitationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ExpiresAt      time.Time        `json:"expires_at"`
	CreatedAt      time.Time        `json:"created_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
