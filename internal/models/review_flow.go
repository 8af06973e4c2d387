package models

import "time"

type ReviewFlowStatus string

const (
	ReviewFlowOpen   ReviewFlowStatus = "open"
	ReviewFlowClosed ReviewFlowStatus = "closed"
)

// ValidReviewFlowStatus reports whether s is one of the two flow states.
func ValidReviewFlowStatus(s ReviewFlowStatus) bool {
	return s == ReviewFlowOpen || s == ReviewFlowClosed
}

// ReviewFlow is one approval round for a form. A form accumulates flows
// over its life; re-review creates a new flow rather than reopening an
// old one.
type ReviewFlow struct {
	ID             string           `gorm:"type:varchar(36);primarykey" json:"id"`
	FormID         string           `gorm:"type:varchar(36);not null;index" json:"form_id"`
	OrganizationID string           `gorm:"type:varchar(36);not null;index" json:"organization_id"`
	Status         ReviewFlowStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Version        int              `gorm:"not null;default:1" json:"version"`
	LastModifiedBy string           `gorm:"type:varchar(36)" json:"last_modified_by"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Form     Form      `gorm:"foreignKey:FormID" json:"form,omitempty"`
	Comments []Comment `gorm:"foreignKey:ReviewFlowID" json:"comments,omitempty"`
}
