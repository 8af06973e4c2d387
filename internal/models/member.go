package models

import "time"

type MemberRole string

const (
	RoleOwner    MemberRole = "owner"
	RoleReviewer MemberRole = "reviewer"
	RoleExecutor MemberRole = "executor"
	RoleMember   MemberRole = "member"
)

// Member links one user to one organization with a role. A user may hold
// independent roles in different organizations.
type Member struct {
	ID             string     `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_members_user_org" json:"user_id"`
	OrganizationID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_members_user_org" json:"organization_id"`
	Role           MemberRole `gorm:"type:varchar(20);not null" json:"role"`
	Version        int        `gorm:"not null;default:1" json:"version"`
	LastModifiedBy string     `gorm:"type:varchar(36)" json:"last_modified_by"`
	CreatedAt      time.Time  `json:"created_at"`

	// Relations
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// CanReview reports whether the member's role allows creating or
// transitioning review flows.
func (m *Member) CanReview() bool {
	return m.Role == RoleOwner || m.Role == RoleReviewer
}
