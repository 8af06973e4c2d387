package authz

import (
	"errors"
	"fmt"

	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotMember        = errors.New("user is not a member of the organization")
	ErrInsufficientRole = errors.New("member role does not permit this action")
)

// Guard resolves the caller's membership within a target organization and
// approves or denies an operation.
//
// Platform admins bypass every organization-scoped check. When an admin has
// no member record in the organization the resolved member is nil and the
// caller decides whether a concrete acting member is still required (for
// example, comment authoring needs one).
type Guard struct {
	orgRepo repository.OrganizationRepository
}

// NewGuard creates a new Guard
func NewGuard(orgRepo repository.OrganizationRepository) *Guard {
	return &Guard{orgRepo: orgRepo}
}

// RequireMember allows any member of the organization, or a platform admin.
func (g *Guard) RequireMember(user *models.User, organizationID string) (*models.Member, error) {
	member, err := g.orgRepo.FindMember(organizationID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if user.IsAdmin() {
				return nil, nil
			}
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("failed to resolve membership: %w", err)
	}

	return member, nil
}

// RequireRole allows members holding one of the given roles, or a platform
// admin regardless of membership.
func (g *Guard) RequireRole(user *models.User, organizationID string, roles ...models.MemberRole) (*models.Member, error) {
	member, err := g.RequireMember(user, organizationID)
	if err != nil {
		return nil, err
	}

	if member == nil {
		// Admin without a member record.
		return nil, nil
	}

	for _, role := range roles {
		if member.Role == role {
			return member, nil
		}
	}

	if user.IsAdmin() {
		return member, nil
	}

	return nil, ErrInsufficientRole
}
