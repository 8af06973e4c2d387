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
	ErrReviewFlowNotFound      = errors.New("review flow not found")
	ErrFormOrgMismatch         = errors.New("form does not belong to the active organization")
	ErrInvalidReviewFlowStatus = errors.New("invalid review flow status")
	ErrCommentNotFound         = errors.New("comment not found")
	ErrCommentContentRequired  = errors.New("comment content is required")
	ErrNotCommentAuthor        = errors.New("only the comment's author can delete it")
	ErrFormFieldNotFound       = errors.New("form field not found")
	ErrFieldFormMismatch       = errors.New("form field does not belong to the review flow's form")
)

// ReviewService is the review workflow engine: flow lifecycle, versioning
// discipline and comment threading.
//
// Flows have two states, open and closed. Creation always starts a fresh
// flow at version 1; a second call for the same form starts a second round
// rather than reopening the first. Every update writes version+1 and
// lastModifiedBy unconditionally, including transitions that leave the
// status unchanged.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	formRepo   repository.FormRepository
	orgRepo    repository.OrganizationRepository
	guard      *authz.Guard
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, formRepo repository.FormRepository, orgRepo repository.OrganizationRepository, guard *authz.Guard) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		formRepo:   formRepo,
		orgRepo:    orgRepo,
		guard:      guard,
	}
}

// CreateReviewFlow opens a new review round for a form.
//
// The form must exist and belong to the caller's active organization, and
// the caller must hold the owner or reviewer role there (or be a platform
// admin). Not idempotent: two calls for the same form yield two flows.
func (s *ReviewService) CreateReviewFlow(user *models.User, activeOrganizationID, formID string) (*models.ReviewFlow, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to find form: %w", err)
	}

	if form.OrganizationID != activeOrganizationID {
		return nil, ErrFormOrgMismatch
	}

	member, err := s.guard.RequireRole(user, activeOrganizationID, models.RoleOwner, models.RoleReviewer)
	if err != nil {
		return nil, err
	}

	flow := &models.ReviewFlow{
		ID:             utils.NewID(),
		FormID:         formID,
		OrganizationID: activeOrganizationID,
		Status:         models.ReviewFlowOpen,
		Version:        1,
		LastModifiedBy: actorRef(member, user),
	}

	if err := s.reviewRepo.CreateFlow(flow); err != nil {
		return nil, fmt.Errorf("failed to create review flow: %w", err)
	}

	return flow, nil
}

// UpdateReviewFlow transitions a flow's status. No transition is rejected
// based on the current state; open→open and closed→closed are permitted
// no-ops that still bump the version.
func (s *ReviewService) UpdateReviewFlow(user *models.User, flowID string, status *models.ReviewFlowStatus) (*models.ReviewFlow, error) {
	flow, err := s.findFlow(flowID)
	if err != nil {
		return nil, err
	}

	member, err := s.guard.RequireRole(user, flow.OrganizationID, models.RoleOwner, models.RoleReviewer)
	if err != nil {
		return nil, err
	}

	if status != nil {
		if !models.ValidReviewFlowStatus(*status) {
			return nil, ErrInvalidReviewFlowStatus
		}
		flow.Status = *status
	}

	flow.Version++
	flow.LastModifiedBy = actorRef(member, user)
	flow.UpdatedAt = time.Now()

	if err := s.reviewRepo.UpdateFlow(flow); err != nil {
		return nil, fmt.Errorf("failed to update review flow: %w", err)
	}

	return flow, nil
}

// GetReviewFlow returns a flow. Any member of the owning organization, or
// admin.
func (s *ReviewService) GetReviewFlow(user *models.User, flowID string) (*models.ReviewFlow, error) {
	flow, err := s.findFlow(flowID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.RequireMember(user, flow.OrganizationID); err != nil {
		return nil, err
	}

	return flow, nil
}

// ListOrganizationReviewFlows lists an organization's flows, oldest first,
// optionally filtered by status. Any member, or admin.
func (s *ReviewService) ListOrganizationReviewFlows(user *models.User, organizationID string, status *models.ReviewFlowStatus) ([]models.ReviewFlow, error) {
	if _, err := s.guard.RequireMember(user, organizationID); err != nil {
		return nil, err
	}

	if status != nil && !models.ValidReviewFlowStatus(*status) {
		return nil, ErrInvalidReviewFlowStatus
	}

	flows, err := s.reviewRepo.ListFlowsByOrganization(organizationID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list review flows: %w", err)
	}
	return flows, nil
}

// ListFormReviewFlows lists a form's flows, oldest first. Any member of
// the form's organization, or admin.
func (s *ReviewService) ListFormReviewFlows(user *models.User, formID string) ([]models.ReviewFlow, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to find form: %w", err)
	}

	if _, err := s.guard.RequireMember(user, form.OrganizationID); err != nil {
		return nil, err
	}

	flows, err := s.reviewRepo.ListFlowsByForm(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review flows: %w", err)
	}
	return flows, nil
}

// AddCommentInput represents input for adding a comment
type AddCommentInput struct {
	ReviewFlowID string
	FormFieldID  *string
	Content      string
}

// AddComment attaches a comment to a review flow, optionally scoped to one
// of the form's fields. Authoring requires a concrete member record in the
// flow's organization; the parent flow's version is not bumped.
func (s *ReviewService) AddComment(user *models.User, activeOrganizationID string, input AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrCommentContentRequired
	}

	member, err := s.guard.RequireMember(user, activeOrganizationID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNoActingMember
	}

	flow, err := s.findFlow(input.ReviewFlowID)
	if err != nil {
		return nil, err
	}
	if flow.OrganizationID != activeOrganizationID {
		// Flows outside the active organization stay invisible.
		return nil, ErrReviewFlowNotFound
	}

	if input.FormFieldID != nil {
		field, err := s.formRepo.FindFieldByID(*input.FormFieldID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFormFieldNotFound
			}
			return nil, fmt.Errorf("failed to find form field: %w", err)
		}
		if field.FormID != flow.FormID {
			return nil, ErrFieldFormMismatch
		}
	}

	comment := &models.Comment{
		ID:           utils.NewID(),
		ReviewFlowID: input.ReviewFlowID,
		FormFieldID:  input.FormFieldID,
		MemberID:     member.ID,
		Content:      input.Content,
	}

	if err := s.reviewRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// DeleteComment hard deletes a comment. Allowed for the authoring member
// or a platform admin.
func (s *ReviewService) DeleteComment(user *models.User, commentID string) error {
	comment, err := s.reviewRepo.FindCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if !user.IsAdmin() {
		author, err := s.orgRepo.FindMemberByID(comment.MemberID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to resolve comment author: %w", err)
		}
		if author == nil || author.UserID != user.ID {
			return ErrNotCommentAuthor
		}
	}

	if err := s.reviewRepo.DeleteComment(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// ListComments lists a flow's comments, oldest first. A non-nil
// formFieldID restricts the result to that field's thread; flow-level
// comments (nil formFieldID) are excluded from field threads.
func (s *ReviewService) ListComments(user *models.User, reviewFlowID string, formFieldID *string) ([]models.Comment, error) {
	flow, err := s.findFlow(reviewFlowID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.RequireMember(user, flow.OrganizationID); err != nil {
		return nil, err
	}

	comments, err := s.reviewRepo.ListComments(reviewFlowID, formFieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *ReviewService) findFlow(flowID string) (*models.ReviewFlow, error) {
	flow, err := s.reviewRepo.FindFlowByID(flowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewFlowNotFound
		}
		return nil, fmt.Errorf("failed to find review flow: %w", err)
	}
	return flow, nil
}
