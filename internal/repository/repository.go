package repository

import (
	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// OrganizationRepository defines the interface for organization, member and
// invitation data access
type OrganizationRepository interface {
	// CreateWithOwner creates an organization and its first owner member
	// within a single transaction
	CreateWithOwner(org *models.Organization, owner *models.Member) error

	// FindByID finds an organization by ID
	FindByID(id string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// AddMember adds a member to an organization
	AddMember(member *models.Member) error

	// FindMember finds the membership of a user in an organization
	FindMember(organizationID, userID string) (*models.Member, error)

	// FindMemberByID finds a member by its own ID
	FindMemberByID(id string) (*models.Member, error)

	// ListMembers lists all members of an organization
	ListMembers(organizationID string) ([]models.Member, error)

	// ListMembersByUserID lists all memberships of a user
	ListMembersByUserID(userID string) ([]models.Member, error)

	// CreateInvitation stores a pending invitation
	CreateInvitation(invitation *models.Invitation) error

	// ListInvitations lists invitations for an organization
	ListInvitations(organizationID string) ([]models.Invitation, error)
}

// TemplateRepository defines the interface for form template data access
type TemplateRepository interface {
	// CreateWithFields creates a template and its fields in one transaction
	CreateWithFields(template *models.FormTemplate, fields []models.FormTemplateField) error

	// FindByID finds a template by ID with its fields ordered by field_order
	FindByID(id string) (*models.FormTemplate, error)

	// List lists all templates ordered by name
	List() ([]models.FormTemplate, error)

	// Update saves template metadata and, when replaceFields is true,
	// replaces the whole field set (delete all, insert new) in the same
	// transaction
	Update(template *models.FormTemplate, fields []models.FormTemplateField, replaceFields bool) error

	// Delete removes a template and its fields in one transaction
	Delete(id string) error
}

// FormRepository defines the interface for form, form field and form
// history data access
type FormRepository interface {
	// CreateWithFields creates a form and its fields in one transaction
	CreateWithFields(form *models.Form, fields []models.FormField) error

	// FindByID finds a form by ID with its fields ordered by field_order
	FindByID(id string) (*models.Form, error)

	// ListByOrganization lists forms belonging to an organization, paginated,
	// along with the total form count
	ListByOrganization(organizationID string, params utils.PaginationParams) ([]models.Form, int64, error)

	// Update saves form metadata and optionally replaces the field set and
	// appends a history row, all in one transaction
	Update(form *models.Form, fields []models.FormField, replaceFields bool, history *models.FormHistory) error

	// Delete removes a form and its fields in one transaction
	Delete(id string) error

	// FindFieldByID finds a single form field
	FindFieldByID(id string) (*models.FormField, error)

	// ListHistory lists history rows for a form, newest first
	ListHistory(formID string) ([]models.FormHistory, error)
}

// ReviewRepository defines the interface for review flow and comment data
// access
type ReviewRepository interface {
	// CreateFlow inserts a new review flow
	CreateFlow(flow *models.ReviewFlow) error

	// FindFlowByID finds a review flow by ID
	FindFlowByID(id string) (*models.ReviewFlow, error)

	// ListFlowsByOrganization lists flows for an organization, oldest
	// first, optionally filtered by status
	ListFlowsByOrganization(organizationID string, status *models.ReviewFlowStatus) ([]models.ReviewFlow, error)

	// ListFlowsByForm lists flows for a form, oldest first
	ListFlowsByForm(formID string) ([]models.ReviewFlow, error)

	// UpdateFlow saves a review flow
	UpdateFlow(flow *models.ReviewFlow) error

	// CreateComment inserts a comment
	CreateComment(comment *models.Comment) error

	// FindCommentByID finds a comment by ID
	FindCommentByID(id string) (*models.Comment, error)

	// ListComments lists comments for a flow, oldest first; a non-nil
	// formFieldID restricts the result to that field's comments
	ListComments(reviewFlowID string, formFieldID *string) ([]models.Comment, error)

	// DeleteComment hard deletes a comment
	DeleteComment(id string) error
}
