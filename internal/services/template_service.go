package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/repository"
	"github.com/reviewdesk/form-review-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound     = errors.New("form template not found")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrFieldNameRequired    = errors.New("field name is required")
	ErrInvalidFieldType     = errors.New("invalid field type")
	ErrDuplicateFieldOrder  = errors.New("field order values must be unique")
)

// TemplateService handles form template business logic. Templates are
// platform global; any authenticated user may manage them.
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// TemplateFieldInput represents one field in a create/update payload
type TemplateFieldInput struct {
	Name            string           `json:"name" binding:"required"`
	Type            models.FieldType `json:"type" binding:"required"`
	Required        bool             `json:"required"`
	Order           int              `json:"order"`
	Options         *string          `json:"options"`
	DefaultValue    *string          `json:"default_value"`
	ValidationRules *string          `json:"validation_rules"`
}

// CreateTemplateInput represents input for creating a template
type CreateTemplateInput struct {
	Name        string
	Description *string
	Fields      []TemplateFieldInput
	ActorID     string
}

// ListTemplates lists all templates ordered by name
func (s *TemplateService) ListTemplates() ([]models.FormTemplate, error) {
	templates, err := s.templateRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns a template with its fields
func (s *TemplateService) GetTemplate(id string) (*models.FormTemplate, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}

// CreateTemplate creates a template with its field set, version 1
func (s *TemplateService) CreateTemplate(input CreateTemplateInput) (*models.FormTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTemplateNameRequired
	}

	if err := validateTemplateFields(input.Fields); err != nil {
		return nil, err
	}

	template := &models.FormTemplate{
		ID:             utils.NewID(),
		Name:           name,
		Description:    input.Description,
		Version:        1,
		LastModifiedBy: input.ActorID,
	}

	fields := buildTemplateFields(template.ID, input.Fields)

	if err := s.templateRepo.CreateWithFields(template, fields); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return s.templateRepo.FindByID(template.ID)
}

// UpdateTemplateInput represents a partial template update. A non-nil
// Fields slice replaces the whole field set.
type UpdateTemplateInput struct {
	Name        *string
	Description *string
	Fields      *[]TemplateFieldInput
	ActorID     string
}

// UpdateTemplate updates a template. Every successful update increments
// version by exactly one, whether or not the field set was replaced.
func (s *TemplateService) UpdateTemplate(id string, input UpdateTemplateInput) (*models.FormTemplate, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTemplateNameRequired
		}
		template.Name = name
	}
	if input.Description != nil {
		template.Description = input.Description
	}

	var fields []models.FormTemplateField
	replaceFields := input.Fields != nil
	if replaceFields {
		if err := validateTemplateFields(*input.Fields); err != nil {
			return nil, err
		}
		fields = buildTemplateFields(template.ID, *input.Fields)
	}

	template.Version++
	template.LastModifiedBy = input.ActorID
	template.UpdatedAt = time.Now()
	template.Fields = nil

	if err := s.templateRepo.Update(template, fields, replaceFields); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return s.templateRepo.FindByID(template.ID)
}

// DeleteTemplate removes a template and its fields
func (s *TemplateService) DeleteTemplate(id string) error {
	if _, err := s.templateRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to find template: %w", err)
	}

	if err := s.templateRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}

func validateTemplateFields(inputs []TemplateFieldInput) error {
	seen := make(map[int]bool, len(inputs))
	for _, f := range inputs {
		if strings.TrimSpace(f.Name) == "" {
			return ErrFieldNameRequired
		}
		if !models.ValidFieldType(f.Type) {
			return ErrInvalidFieldType
		}
		if seen[f.Order] {
			return ErrDuplicateFieldOrder
		}
		seen[f.Order] = true
	}
	return nil
}

func buildTemplateFields(templateID string, inputs []TemplateFieldInput) []models.FormTemplateField {
	fields := make([]models.FormTemplateField, len(inputs))
	for i, f := range inputs {
		fields[i] = models.FormTemplateField{
			ID:              utils.NewID(),
			TemplateID:      templateID,
			Name:            f.Name,
			Type:            f.Type,
			Required:        f.Required,
			Order:           f.Order,
			Options:         f.Options,
			DefaultValue:    f.DefaultValue,
			ValidationRules: f.ValidationRules,
		}
	}
	return fields
}
