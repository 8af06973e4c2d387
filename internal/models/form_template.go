package models

import "time"

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeFile     FieldType = "file"
)

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeSelect, FieldTypeCheckbox, FieldTypeRadio, FieldTypeFile:
		return true
	}
	return false
}

// FormTemplate is a reusable field-set blueprint. Templates are platform
// global and not scoped to an organization.
type FormTemplate struct {
	ID             string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    *string   `gorm:"type:text" json:"description"`
	Version        int       `gorm:"not null;default:1" json:"version"`
	LastModifiedBy string    `gorm:"type:varchar(36)" json:"last_modified_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Fields []FormTemplateField `gorm:"foreignKey:TemplateID" json:"fields,omitempty"`
}

type FormTemplateField struct {
	ID              string    `gorm:"type:varchar(36);primarykey" json:"id"`
	TemplateID      string    `gorm:"type:varchar(36);not null;index" json:"template_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Type            FieldType `gorm:"type:varchar(20);not null" json:"type"`
	Required        bool      `gorm:"not null;default:false" json:"required"`
	Order           int       `gorm:"column:field_order;not null" json:"order"`
	Options         *string   `gorm:"type:text" json:"options"`
	DefaultValue    *string   `gorm:"type:text" json:"default_value"`
	ValidationRules *string   `gorm:"type:text" json:"validation_rules"`
}
