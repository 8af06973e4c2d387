package dto

import (
	"time"

	"github.com/reviewdesk/form-review-api/internal/models"
)

// ReviewFlowDTO represents a review flow in API responses
type ReviewFlowDTO struct {
	ID             string                  `json:"id"`
	FormID         string                  `json:"form_id"`
	OrganizationID string                  `json:"organization_id"`
	Status         models.ReviewFlowStatus `json:"status"`
	Version        int                     `json:"version"`
	LastModifiedBy string                  `json:"last_modified_by"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID           string    `json:"id"`
	ReviewFlowID string    `json:"review_flow_id"`
	FormFieldID  *string   `json:"form_field_id"`
	MemberID     string    `json:"member_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToReviewFlowDTO converts a review flow to DTO
func ToReviewFlowDTO(flow models.ReviewFlow) ReviewFlowDTO {
	return ReviewFlowDTO{
		ID:             flow.ID,
		FormID:         flow.FormID,
		OrganizationID: flow.OrganizationID,
		Status:         flow.Status,
		Version:        flow.Version,
		LastModifiedBy: flow.LastModifiedBy,
		CreatedAt:      flow.CreatedAt,
		UpdatedAt:      flow.UpdatedAt,
	}
}

// ToReviewFlowDTOs converts a slice of review flows
func ToReviewFlowDTOs(flows []models.ReviewFlow) []ReviewFlowDTO {
	dtos := make([]ReviewFlowDTO, len(flows))
	for i, flow := range flows {
		dtos[i] = ToReviewFlowDTO(flow)
	}
	return dtos
}

// ToCommentDTO converts a comment to DTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:           comment.ID,
		ReviewFlowID: comment.ReviewFlowID,
		FormFieldID:  comment.FormFieldID,
		MemberID:     comment.MemberID,
		Content:      comment.Content,
		CreatedAt:    comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = ToCommentDTO(comment)
	}
	return dtos
}
