package dto

import (
	"time"

	"github.com/reviewdesk/form-review-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      *string   `json:"slug"`
	Logo      *string   `json:"logo"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationWithRoleDTO represents an organization with the user's role
type OrganizationWithRoleDTO struct {
	OrganizationDTO
	Role models.MemberRole `json:"role"`
}

// MemberDTO represents a member in an organization
type MemberDTO struct {
	ID        string            `json:"id"`
	User      UserDTO           `json:"user"`
	Role      models.MemberRole `json:"role"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
}

// OrganizationDetailDTO represents detailed organization information
type OrganizationDetailDTO struct {
	OrganizationDTO
	Members  []MemberDTO        `json:"members"`
	YourRole *models.MemberRole `json:"your_role"`
}

// InvitationDTO represents a pending invitation
type InvitationDTO struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	OrganizationID string                  `json:"organization_id"`
	Role           models.MemberRole       `json:"role"`
	Status         models.InvitationStatus `json:"status"`
	ExpiresAt      time.Time               `json:"expires_at"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ToOrganizationDTO converts an organization to DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Logo:      org.Logo,
		CreatedAt: org.CreatedAt,
	}
}

// ToOrganizationWithRoleDTO converts a membership to DTO with role
func ToOrganizationWithRoleDTO(member models.Member) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		OrganizationDTO: ToOrganizationDTO(member.Organization),
		Role:            member.Role,
	}
}

// ToMemberDTO converts a member to DTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		ID:        member.ID,
		User:      ToUserDTO(member.User),
		Role:      member.Role,
		Version:   member.Version,
		CreatedAt: member.CreatedAt,
	}
}

// ToOrganizationDetailDTO converts an organization with members to a
// detailed DTO. yourRole is nil for platform admins without a membership.
func ToOrganizationDetailDTO(org models.Organization, members []models.Member, caller *models.Member) OrganizationDetailDTO {
	memberDTOs := make([]MemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToMemberDTO(member)
	}

	var yourRole *models.MemberRole
	if caller != nil {
		yourRole = &caller.Role
	}

	return OrganizationDetailDTO{
		OrganizationDTO: ToOrganizationDTO(org),
		Members:         memberDTOs,
		YourRole:        yourRole,
	}
}

// ToInvitationDTO converts an invitation to DTO
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:             invitation.ID,
		Email:          invitation.Email,
		OrganizationID: invitation.OrganizationID,
		Role:           invitation.Role,
		Status:         invitation.Status,
		ExpiresAt:      invitation.ExpiresAt,
		CreatedAt:      invitation.CreatedAt,
	}
}
