package repository

import (
	"github.com/reviewdesk/form-review-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithOwner creates an organization and its first owner member atomically
func (r *GormOrganizationRepository) CreateWithOwner(org *models.Organization, owner *models.Member) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		owner.OrganizationID = org.ID

		return tx.Create(owner).Error
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// AddMember adds a member to an organization
func (r *GormOrganizationRepository) AddMember(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindMember finds the membership of a user in an organization
func (r *GormOrganizationRepository) FindMember(organizationID, userID string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMemberByID finds a member by its own ID
func (r *GormOrganizationRepository) FindMemberByID(id string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(organizationID string) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembersByUserID lists all memberships of a user
func (r *GormOrganizationRepository) ListMembersByUserID(userID string) ([]models.Member, error) {
	var memberships []models.Member
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CreateInvitation stores a pending invitation
func (r *GormOrganizationRepository) CreateInvitation(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// ListInvitations lists invitations for an organization
func (r *GormOrganizationRepository) ListInvitations(organizationID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}
