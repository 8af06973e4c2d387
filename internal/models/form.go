package models

import "time"

type FormStatus string

const (
	FormStatusDraft        FormStatus = "draft"
	FormStatusUnderReview  FormStatus = "under_review"
	FormStatusNeedsChanges FormStatus = "needs_changes"
	FormStatusApproved     FormStatus = "approved"
	FormStatusRejected     FormStatus = "rejected"
)

// ValidFormStatus reports whether s is one of the supported form statuses.
func ValidFormStatus(s FormStatus) bool {
	switch s {
	case FormStatusDraft, FormStatusUnderReview, FormStatusNeedsChanges,
		FormStatusApproved, FormStatusRejected:
		return true
	}
	return false
}

type FormFieldStatus string

const (
	FormFieldStatusDraft    FormFieldStatus = "draft"
	FormFieldStatusApproved FormFieldStatus = "approved"
	FormFieldStatusRejected FormFieldStatus = "rejected"
)

// Form is an instantiated, fillable document, optionally derived from a
// FormTemplate.
type Form struct {
	ID               string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Description      *string    `gorm:"type:text" json:"description"`
	Status           FormStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	OrganizationID   string     `gorm:"type:varchar(36);not null;index" json:"organization_id"`
	CreatorMemberID  string     `gorm:"type:varchar(36);not null" json:"creator_member_id"`
	ExecutorMemberID *string    `gorm:"type:varchar(36)" json:"executor_member_id"`
	TemplateID       *string    `gorm:"type:varchar(36)" json:"template_id"`
	Version          int        `gorm:"not null;default:1" json:"version"`
	LastModifiedBy   string     `gorm:"type:varchar(36)" json:"last_modified_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Fields       []FormField  `gorm:"foreignKey:FormID" json:"fields,omitempty"`
}

type FormField struct {
	ID              string          `gorm:"type:varchar(36);primarykey" json:"id"`
	FormID          string          `gorm:"type:varchar(36);not null;index" json:"form_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Type            FieldType       `gorm:"type:varchar(20);not null" json:"type"`
	Required        bool            `gorm:"not null;default:false" json:"required"`
	Order           int             `gorm:"column:field_order;not null" json:"order"`
	Options         *string         `gorm:"type:text" json:"options"`
	Value           *string         `gorm:"type:text" json:"value"`
	ValidationRules *string         `gorm:"type:text" json:"validation_rules"`
	Status          FormFieldStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
}
