package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reviewdesk/form-review-api/internal/authz"
	"github.com/reviewdesk/form-review-api/internal/constants"
	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/repository"
	"github.com/reviewdesk/form-review-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrOrganizationName      = errors.New("organization name is required")
	ErrInvalidMemberRole     = errors.New("invalid member role")
	ErrInvalidInvitationMail = errors.New("invitation email is required")
)

// OrganizationService handles organization, membership and invitation
// business logic.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	guard   *authz.Guard
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(orgRepo repository.OrganizationRepository, guard *authz.Guard) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		guard:   guard,
	}
}

// CreateOrganizationInput represents input for creating an organization
type CreateOrganizationInput struct {
	Name string
	Slug *string
	Logo *string
}

// CreateOrganization creates an organization with the acting user as its
// first member, role owner, version 1.
func (s *OrganizationService) CreateOrganization(user *models.User, input CreateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrOrganizationName
	}

	org := &models.Organization{
		ID:   utils.NewID(),
		Name: name,
		Slug: input.Slug,
		Logo: input.Logo,
	}

	owner := &models.Member{
		ID:             utils.NewID(),
		UserID:         user.ID,
		Role:           models.RoleOwner,
		Version:        1,
		LastModifiedBy: user.ID,
	}

	if err := s.orgRepo.CreateWithOwner(org, owner); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// ListOrganizations returns the acting user's memberships with their
// organizations preloaded.
func (s *OrganizationService) ListOrganizations(userID string) ([]models.Member, error) {
	memberships, err := s.orgRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}

// GetOrganization returns an organization with its members. The caller must
// be a member or a platform admin; the caller's own member record is
// returned alongside (nil for an admin without membership).
func (s *OrganizationService) GetOrganization(user *models.User, organizationID string) (*models.Organization, []models.Member, *models.Member, error) {
	member, err := s.guard.RequireMember(user, organizationID)
	if err != nil {
		return nil, nil, nil, err
	}

	org, err := s.orgRepo.FindByID(organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	members, err := s.orgRepo.ListMembers(organizationID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return org, members, member, nil
}

// UpdateOrganizationInput represents a partial organization update
type UpdateOrganizationInput struct {
	Name *string
	Slug *string
	Logo *string
}

// UpdateOrganization updates organization metadata. Owners only; platform
// admins bypass the role check.
func (s *OrganizationService) UpdateOrganization(user *models.User, organizationID string, input UpdateOrganizationInput) (*models.Organization, error) {
	if _, err := s.guard.RequireRole(user, organizationID, models.RoleOwner); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrOrganizationName
		}
		org.Name = name
	}
	if input.Slug != nil {
		org.Slug = input.Slug
	}
	if input.Logo != nil {
		org.Logo = input.Logo
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// InviteMemberInput represents input for inviting a member
type InviteMemberInput struct {
	OrganizationID string
	Email          string
	Role           models.MemberRole
}

// InviteMember records a pending invitation. Owners only; platform admins
// bypass the role check.
func (s *OrganizationService) InviteMember(user *models.User, input InviteMemberInput) (*models.Invitation, error) {
	if _, err := s.guard.RequireRole(user, input.OrganizationID, models.RoleOwner); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrInvalidInvitationMail
	}

	switch input.Role {
	case models.RoleOwner, models.RoleReviewer, models.RoleExecutor, models.RoleMember:
	default:
		return nil, ErrInvalidMemberRole
	}

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	invitation := &models.Invitation{
		ID:             utils.NewID(),
		Email:          email,
		OrganizationID: input.OrganizationID,
		InviterID:      user.ID,
		Role:           input.Role,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(constants.InvitationTTL),
	}

	if err := s.orgRepo.CreateInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// ListInvitations lists an organization's invitations. Owners only;
// platform admins bypass the role check.
func (s *OrganizationService) ListInvitations(user *models.User, organizationID string) ([]models.Invitation, error) {
	if _, err := s.guard.RequireRole(user, organizationID, models.RoleOwner); err != nil {
		return nil, err
	}

	invitations, err := s.orgRepo.ListInvitations(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// SetActiveOrganization verifies the user may act within the organization
// before the handler stores it in the session.
func (s *OrganizationService) SetActiveOrganization(user *models.User, organizationID string) (*models.Member, error) {
	if _, err := s.orgRepo.FindByID(organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	return s.guard.RequireMember(user, organizationID)
}
