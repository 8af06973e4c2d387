package repository

import (
	"github.com/reviewdesk/form-review-api/internal/models"
	"gorm.io/gorm"
)

// GormReviewRepository is a GORM implementation of ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

// CreateFlow inserts a new review flow
func (r *GormReviewRepository) CreateFlow(flow *models.ReviewFlow) error {
	return r.db.Create(flow).Error
}

// FindFlowByID finds a review flow by ID
func (r *GormReviewRepository) FindFlowByID(id string) (*models.ReviewFlow, error) {
	var flow models.ReviewFlow
	if err := r.db.Where("id = ?", id).First(&flow).Error; err != nil {
		return nil, err
	}
	return &flow, nil
}

// ListFlowsByOrganization lists flows for an organization, oldest first
func (r *GormReviewRepository) ListFlowsByOrganization(organizationID string, status *models.ReviewFlowStatus) ([]models.ReviewFlow, error) {
	query := r.db.Where("organization_id = ?", organizationID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var flows []models.ReviewFlow
	if err := query.Order("created_at ASC").Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

// ListFlowsByForm lists flows for a form, oldest first
func (r *GormReviewRepository) ListFlowsByForm(formID string) ([]models.ReviewFlow, error) {
	var flows []models.ReviewFlow
	if err := r.db.Where("form_id = ?", formID).
		Order("created_at ASC").
		Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

// UpdateFlow saves a review flow
func (r *GormReviewRepository) UpdateFlow(flow *models.ReviewFlow) error {
	return r.db.Save(flow).Error
}

// CreateComment inserts a comment
func (r *GormReviewRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindCommentByID finds a comment by ID
func (r *GormReviewRepository) FindCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments lists comments for a flow, oldest first
func (r *GormReviewRepository) ListComments(reviewFlowID string, formFieldID *string) ([]models.Comment, error) {
	query := r.db.Where("review_flow_id = ?", reviewFlowID)
	if formFieldID != nil {
		query = query.Where("form_field_id = ?", *formFieldID)
	}

	var comments []models.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment hard deletes a comment
func (r *GormReviewRepository) DeleteComment(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Comment{}).Error
}
