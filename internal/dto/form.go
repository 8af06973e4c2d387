package dto

import (
	"time"

	"github.com/reviewdesk/form-review-api/internal/models"
)

// FormFieldDTO represents one field of a form
type FormFieldDTO struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Type            models.FieldType       `json:"type"`
	Required        bool                   `json:"required"`
	Order           int                    `json:"order"`
	Options         *string                `json:"options"`
	Value           *string                `json:"value"`
	ValidationRules *string                `json:"validation_rules"`
	Status          models.FormFieldStatus `json:"status"`
}

// FormDTO represents a form with its ordered fields
type FormDTO struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      *string           `json:"description"`
	Status           models.FormStatus `json:"status"`
	OrganizationID   string            `json:"organization_id"`
	CreatorMemberID  string            `json:"creator_member_id"`
	ExecutorMemberID *string           `json:"executor_member_id"`
	TemplateID       *string           `json:"template_id"`
	Version          int               `json:"version"`
	LastModifiedBy   string            `json:"last_modified_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Fields           []FormFieldDTO    `json:"fields,omitempty"`
}

// TemplateFieldDTO represents one field of a form template
type TemplateFieldDTO struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            models.FieldType `json:"type"`
	Required        bool             `json:"required"`
	Order           int              `json:"order"`
	Options         *string          `json:"options"`
	DefaultValue    *string          `json:"default_value"`
	ValidationRules *string          `json:"validation_rules"`
}

// TemplateDTO represents a form template with its ordered fields
type TemplateDTO struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	Version        int                `json:"version"`
	LastModifiedBy string             `json:"last_modified_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Fields         []TemplateFieldDTO `json:"fields,omitempty"`
}

// FormHistoryDTO represents one status snapshot of a form
type FormHistoryDTO struct {
	ID        string            `json:"id"`
	FormID    string            `json:"form_id"`
	MemberID  string            `json:"member_id"`
	Status    models.FormStatus `json:"status"`
	Data      *string           `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToFormDTO converts a form to DTO
func ToFormDTO(form models.Form) FormDTO {
	fields := make([]FormFieldDTO, len(form.Fields))
	for i, f := range form.Fields {
		fields[i] = FormFieldDTO{
			ID:              f.ID,
			Name:            f.Name,
			Type:            f.Type,
			Required:        f.Required,
			Order:           f.Order,
			Options:         f.Options,
			Value:           f.Value,
			ValidationRules: f.ValidationRules,
			Status:          f.Status,
		}
	}

	return FormDTO{
		ID:               form.ID,
		Title:            form.Title,
		Description:      form.Description,
		Status:           form.Status,
		OrganizationID:   form.OrganizationID,
		CreatorMemberID:  form.CreatorMemberID,
		ExecutorMemberID: form.ExecutorMemberID,
		TemplateID:       form.TemplateID,
		Version:          form.Version,
		LastModifiedBy:   form.LastModifiedBy,
		CreatedAt:        form.CreatedAt,
		UpdatedAt:        form.UpdatedAt,
		Fields:           fields,
	}
}

// ToFormDTOs converts a slice of forms
func ToFormDTOs(forms []models.Form) []FormDTO {
	dtos := make([]FormDTO, len(forms))
	for i, form := range forms {
		dtos[i] = ToFormDTO(form)
	}
	return dtos
}

// ToTemplateDTO converts a template to DTO
func ToTemplateDTO(template models.FormTemplate) TemplateDTO {
	fields := make([]TemplateFieldDTO, len(template.Fields))
	for i, f := range template.Fields {
		fields[i] = TemplateFieldDTO{
			ID:              f.ID,
			Name:            f.Name,
			Type:            f.Type,
			Required:        f.Required,
			Order:           f.Order,
			Options:         f.Options,
			DefaultValue:    f.DefaultValue,
			ValidationRules: f.ValidationRules,
		}
	}

	return TemplateDTO{
		ID:             template.ID,
		Name:           template.Name,
		Description:    template.Description,
		Version:        template.Version,
		LastModifiedBy: template.LastModifiedBy,
		CreatedAt:      template.CreatedAt,
		UpdatedAt:      template.UpdatedAt,
		Fields:         fields,
	}
}

// ToTemplateDTOs converts a slice of templates
func ToTemplateDTOs(templates []models.FormTemplate) []TemplateDTO {
	dtos := make([]TemplateDTO, len(templates))
	for i, template := range templates {
		dtos[i] = ToTemplateDTO(template)
	}
	return dtos
}

// ToFormHistoryDTO converts a history row to DTO
func ToFormHistoryDTO(history models.FormHistory) FormHistoryDTO {
	return FormHistoryDTO{
		ID:        history.ID,
		FormID:    history.FormID,
		MemberID:  history.MemberID,
		Status:    history.Status,
		Data:      history.Data,
		CreatedAt: history.CreatedAt,
	}
}
