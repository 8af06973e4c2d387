package models

import "time"

// Comment is an annotation on a review flow. FormFieldID scopes it to one
// field of the flow's form; nil means a flow-level comment. Comments are
// created and deleted, never updated.
type Comment struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ReviewFlowID string    `gorm:"type:varchar(36);not null;index" json:"review_flow_id"`
	FormFieldID  *string   `gorm:"type:varchar(36)" json:"form_field_id"`
	MemberID     string    `gorm:"type:varchar(36);not null" json:"member_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
