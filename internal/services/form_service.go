package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reviewdesk/form-review-api/internal/authz"
	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/repository"
	"github.com/reviewdesk/form-review-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrFormTitleRequired = errors.New("form title is required")
	ErrInvalidFormStatus = errors.New("invalid form status")
	ErrNoActingMember    = errors.New("no member record resolves for the acting user in this organization")
	ErrNotFormOwner      = errors.New("only the form's creator or an organization owner can delete it")
)

// FormService handles form business logic.
type FormService struct {
	formRepo     repository.FormRepository
	templateRepo repository.TemplateRepository
	guard        *authz.Guard
}

// NewFormService creates a new FormService
func NewFormService(formRepo repository.FormRepository, templateRepo repository.TemplateRepository, guard *authz.Guard) *FormService {
	return &FormService{
		formRepo:     formRepo,
		templateRepo: templateRepo,
		guard:        guard,
	}
}

// FormFieldInput represents one field in a create/update payload
type FormFieldInput struct {
	Name            string           `json:"name" binding:"required"`
	Type            models.FieldType `json:"type" binding:"required"`
	Required        bool             `json:"required"`
	Order           int              `json:"order"`
	Options         *string          `json:"options"`
	Value           *string          `json:"value"`
	ValidationRules *string          `json:"validation_rules"`
}

// CreateFormInput represents input for creating a form
type CreateFormInput struct {
	Title       string
	Description *string
	TemplateID  *string
	Fields      []FormFieldInput
}

// ListForms lists the forms of an organization, paginated. Any member, or
// admin.
func (s *FormService) ListForms(user *models.User, organizationID string, params utils.PaginationParams) ([]models.Form, int64, error) {
	if _, err := s.guard.RequireMember(user, organizationID); err != nil {
		return nil, 0, err
	}

	forms, total, err := s.formRepo.ListByOrganization(organizationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, total, nil
}

// GetForm returns a form with its ordered fields. Any member of the form's
// organization, or admin.
func (s *FormService) GetForm(user *models.User, formID string) (*models.Form, error) {
	form, err := s.findForm(formID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.RequireMember(user, form.OrganizationID); err != nil {
		return nil, err
	}

	return form, nil
}

// CreateForm creates a form with its ordered fields in one transaction,
// status draft, version 1. When a template is referenced and no explicit
// fields are given the template's field set is instantiated.
func (s *FormService) CreateForm(user *models.User, organizationID string, input CreateFormInput) (*models.Form, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrFormTitleRequired
	}

	member, err := s.guard.RequireMember(user, organizationID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		// Creating a form needs a concrete member to record as creator,
		// an admin without membership cannot author here.
		return nil, ErrNoActingMember
	}

	fieldInputs := input.Fields
	if input.TemplateID != nil && len(fieldInputs) == 0 {
		template, err := s.templateRepo.FindByID(*input.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, fmt.Errorf("failed to find template: %w", err)
		}
		fieldInputs = templateFieldsToInputs(template.Fields)
	}

	if err := validateFormFields(fieldInputs); err != nil {
		return nil, err
	}

	form := &models.Form{
		ID:              utils.NewID(),
		Title:           title,
		Description:     input.Description,
		Status:          models.FormStatusDraft,
		OrganizationID:  organizationID,
		CreatorMemberID: member.ID,
		TemplateID:      input.TemplateID,
		Version:         1,
		LastModifiedBy:  member.ID,
	}

	fields := buildFormFields(form.ID, fieldInputs)

	if err := s.formRepo.CreateWithFields(form, fields); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return s.formRepo.FindByID(form.ID)
}

// UpdateFormInput represents a partial form update. A non-nil Fields slice
// replaces the whole field set.
type UpdateFormInput struct {
	Title            *string
	Description      *string
	Status           *models.FormStatus
	ExecutorMemberID *string
	Fields           *[]FormFieldInput
}

// UpdateForm updates a form. Every successful update increments version by
// exactly one; a status change additionally appends a history row.
func (s *FormService) UpdateForm(user *models.User, formID string, input UpdateFormInput) (*models.Form, error) {
	form, err := s.findForm(formID)
	if err != nil {
		return nil, err
	}

	member, err := s.guard.RequireMember(user, form.OrganizationID)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrFormTitleRequired
		}
		form.Title = title
	}
	if input.Description != nil {
		form.Description = input.Description
	}
	if input.Status != nil {
		if !models.ValidFormStatus(*input.Status) {
			return nil, ErrInvalidFormStatus
		}
		statusChanged = form.Status != *input.Status
		form.Status = *input.Status
	}
	if input.ExecutorMemberID != nil {
		form.ExecutorMemberID = input.ExecutorMemberID
	}

	var fields []models.FormField
	replaceFields := input.Fields != nil
	if replaceFields {
		if err := validateFormFields(*input.Fields); err != nil {
			return nil, err
		}
		fields = buildFormFields(form.ID, *input.Fields)
	}

	actor := actorRef(member, user)

	form.Version++
	form.LastModifiedBy = actor
	form.UpdatedAt = time.Now()
	form.Fields = nil

	var history *models.FormHistory
	if statusChanged {
		history = &models.FormHistory{
			ID:       utils.NewID(),
			FormID:   form.ID,
			MemberID: actor,
			Status:   form.Status,
		}
	}

	if err := s.formRepo.Update(form, fields, replaceFields, history); err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	return s.formRepo.FindByID(form.ID)
}

// DeleteForm removes a form. Allowed for the creator member, an
// organization owner, or a platform admin.
func (s *FormService) DeleteForm(user *models.User, formID string) error {
	form, err := s.findForm(formID)
	if err != nil {
		return err
	}

	member, err := s.guard.RequireMember(user, form.OrganizationID)
	if err != nil {
		return err
	}

	if !user.IsAdmin() {
		if member == nil || (member.ID != form.CreatorMemberID && member.Role != models.RoleOwner) {
			return ErrNotFormOwner
		}
	}

	if err := s.formRepo.Delete(formID); err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	return nil
}

// ListHistory lists a form's status history, newest first. Any member of
// the form's organization, or admin.
func (s *FormService) ListHistory(user *models.User, formID string) ([]models.FormHistory, error) {
	form, err := s.findForm(formID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.RequireMember(user, form.OrganizationID); err != nil {
		return nil, err
	}

	histories, err := s.formRepo.ListHistory(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to list form history: %w", err)
	}
	return histories, nil
}

func (s *FormService) findForm(formID string) (*models.Form, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to find form: %w", err)
	}
	return form, nil
}

// actorRef records who performed a mutation: the acting member's id, or
// the user id when no member resolves (platform admins acting outside
// their own organizations).
func actorRef(member *models.Member, user *models.User) string {
	if member != nil {
		return member.ID
	}
	return user.ID
}

func validateFormFields(inputs []FormFieldInput) error {
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

func buildFormFields(formID string, inputs []FormFieldInput) []models.FormField {
	fields := make([]models.FormField, len(inputs))
	for i, f := range inputs {
		fields[i] = models.FormField{
			ID:              utils.NewID(),
			FormID:          formID,
			Name:            f.Name,
			Type:            f.Type,
			Required:        f.Required,
			Order:           f.Order,
			Options:         f.Options,
			Value:           f.Value,
			ValidationRules: f.ValidationRules,
			Status:          models.FormFieldStatusDraft,
		}
	}
	return fields
}

func templateFieldsToInputs(fields []models.FormTemplateField) []FormFieldInput {
	inputs := make([]FormFieldInput, len(fields))
	for i, f := range fields {
		inputs[i] = FormFieldInput{
			Name:            f.Name,
			Type:            f.Type,
			Required:        f.Required,
			Order:           f.Order,
			Options:         f.Options,
			Value:           f.DefaultValue,
			ValidationRules: f.ValidationRules,
		}
	}
	return inputs
}
