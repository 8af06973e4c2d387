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

// ReviewHandler coordinates review flow and comment HTTP handlers.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewFlow opens a new review round for a form
func (h *ReviewHandler) CreateReviewFlow(c *gin.Context) {
	user, activeOrgID, ok := requireActor(c)
	if !ok {
		return
	}

	type CreateReviewFlowRequest struct {
		FormID string `json:"form_id" binding:"required"`
	}

	var req CreateReviewFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	flow, err := h.reviewService.CreateReviewFlow(user, activeOrgID, req.FormID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReviewFlowDTO(*flow))
}

// UpdateReviewFlow transitions a flow's status and bumps its version
func (h *ReviewHandler) UpdateReviewFlow(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateReviewFlowRequest struct {
		Status *models.ReviewFlowStatus `json:"status"`
	}

	var req UpdateReviewFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	flow, err := h.reviewService.UpdateReviewFlow(user, c.Param("id"), req.Status)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewFlowDTO(*flow))
}

// GetReviewFlow returns a single review flow
func (h *ReviewHandler) GetReviewFlow(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	flow, err := h.reviewService.GetReviewFlow(user, c.Param("id"))
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewFlowDTO(*flow))
}

// ListReviewFlows lists an organization's flows, optionally filtered by
// status
func (h *ReviewHandler) ListReviewFlows(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	organizationID := c.Query("organization_id")
	if organizationID == "" {
		apierrors.BadRequest(c, "organization_id is required")
		return
	}

	var status *models.ReviewFlowStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ReviewFlowStatus(raw)
		status = &s
	}

	flows, err := h.reviewService.ListOrganizationReviewFlows(user, organizationID, status)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review_flows": dto.ToReviewFlowDTOs(flows),
	})
}

// ListFormReviewFlows lists all review rounds of a form
func (h *ReviewHandler) ListFormReviewFlows(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	flows, err := h.reviewService.ListFormReviewFlows(user, c.Param("id"))
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review_flows": dto.ToReviewFlowDTOs(flows),
	})
}

// AddComment attaches a comment to a review flow, optionally scoped to one
// form field
func (h *ReviewHandler) AddComment(c *gin.Context) {
	user, activeOrgID, ok := requireActor(c)
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Content     string  `json:"content" binding:"required"`
		FormFieldID *string `json:"form_field_id"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.reviewService.AddComment(user, activeOrgID, services.AddCommentInput{
		ReviewFlowID: c.Param("id"),
		FormFieldID:  req.FormFieldID,
		Content:      req.Content,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments lists a flow's comments; form_field_id narrows the result
// to one field's thread
func (h *ReviewHandler) ListComments(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var formFieldID *string
	if raw := c.Query("form_field_id"); raw != "" {
		formFieldID = &raw
	}

	comments, err := h.reviewService.ListComments(user, c.Param("id"), formFieldID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": dto.ToCommentDTOs(comments),
	})
}

// DeleteComment hard deletes a comment (author or platform admin)
func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.reviewService.DeleteComment(user, c.Param("id")); err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": true,
	})
}

func respondReviewError(c *gin.Context, err error) {
	if respondGuardError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrReviewFlowNotFound),
		errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrFormFieldNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFormOrgMismatch),
		errors.Is(err, services.ErrFieldFormMismatch):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrInvalidReviewFlowStatus),
		errors.Is(err, services.ErrCommentContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoActingMember),
		errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
