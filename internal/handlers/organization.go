package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reviewdesk/form-review-api/internal/dto"
	apierrors "github.com/reviewdesk/form-review-api/internal/errors"
	"github.com/reviewdesk/form-review-api/internal/middleware"
	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/services"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// CreateOrganization creates a new organization with the caller as owner
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateOrgRequest struct {
		Name string  `json:"name" binding:"required"`
		Slug *string `json:"slug"`
		Logo *string `json:"logo"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(user, services.CreateOrganizationInput{
		Name: req.Name,
		Slug: req.Slug,
		Logo: req.Logo,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// ListOrganizations returns all organizations the user is a member of
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.orgService.ListOrganizations(userID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	orgs := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgs[i] = dto.ToOrganizationWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": orgs,
	})
}

// GetOrganization returns organization details with members
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	org, members, caller, err := h.orgService.GetOrganization(user, c.Param("id"))
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailDTO(*org, members, caller))
}

// UpdateOrganization updates organization metadata (owners only)
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateOrgRequest struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
		Logo *string `json:"logo"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganization(user, c.Param("id"), services.UpdateOrganizationInput{
		Name: req.Name,
		Slug: req.Slug,
		Logo: req.Logo,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// ListMembers returns the organization's members
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	_, members, _, err := h.orgService.GetOrganization(user, c.Param("id"))
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToMemberDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": memberDTOs,
	})
}

// InviteMember records a pending invitation (owners or platform admins)
func (h *OrganizationHandler) InviteMember(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type InviteRequest struct {
		Email string            `json:"email" binding:"required,email"`
		Role  models.MemberRole `json:"role" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.orgService.InviteMember(user, services.InviteMemberInput{
		OrganizationID: c.Param("id"),
		Email:          req.Email,
		Role:           req.Role,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation))
}

// ListInvitations returns the organization's invitations (owners only)
func (h *OrganizationHandler) ListInvitations(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	invitations, err := h.orgService.ListInvitations(user, c.Param("id"))
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	invitationDTOs := make([]dto.InvitationDTO, len(invitations))
	for i, inv := range invitations {
		invitationDTOs[i] = dto.ToInvitationDTO(inv)
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": invitationDTOs,
	})
}

func respondOrganizationError(c *gin.Context, err error) {
	if respondGuardError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOrganizationName),
		errors.Is(err, services.ErrInvalidMemberRole),
		errors.Is(err, services.ErrInvalidInvitationMail):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
