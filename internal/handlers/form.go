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
	"github.com/reviewdesk/form-review-api/internal/utils"
)

// FormHandler coordinates form HTTP handlers.
type FormHandler struct {
	formService *services.FormService
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(formService *services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// ListForms lists the forms of the session's active organization
func (h *FormHandler) ListForms(c *gin.Context) {
	user, activeOrgID, ok := requireActor(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	forms, total, err := h.formService.ListForms(user, activeOrgID, params)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forms": dto.ToFormDTOs(forms),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetForm returns a form with its ordered fields
func (h *FormHandler) GetForm(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	form, err := h.formService.GetForm(user, c.Param("id"))
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormDTO(*form))
}

// CreateForm creates a form in the session's active organization
func (h *FormHandler) CreateForm(c *gin.Context) {
	user, activeOrgID, ok := requireActor(c)
	if !ok {
		return
	}

	type CreateFormRequest struct {
		Title       string                    `json:"title" binding:"required"`
		Description *string                   `json:"description"`
		TemplateID  *string                   `json:"template_id"`
		Fields      []services.FormFieldInput `json:"fields"`
	}

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	form, err := h.formService.CreateForm(user, activeOrgID, services.CreateFormInput{
		Title:       req.Title,
		Description: req.Description,
		TemplateID:  req.TemplateID,
		Fields:      req.Fields,
	})
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFormDTO(*form))
}

// UpdateForm applies a partial update; a provided field list replaces the
// prior set wholesale
func (h *FormHandler) UpdateForm(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateFormRequest struct {
		Title            *string                    `json:"title"`
		Description      *string                    `json:"description"`
		Status           *models.FormStatus         `json:"status"`
		ExecutorMemberID *string                    `json:"executor_member_id"`
		Fields           *[]services.FormFieldInput `json:"fields"`
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	form, err := h.formService.UpdateForm(user, c.Param("id"), services.UpdateFormInput{
		Title:            req.Title,
		Description:      req.Description,
		Status:           req.Status,
		ExecutorMemberID: req.ExecutorMemberID,
		Fields:           req.Fields,
	})
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormDTO(*form))
}

// DeleteForm removes a form and its fields
func (h *FormHandler) DeleteForm(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.formService.DeleteForm(user, c.Param("id")); err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Form deleted successfully",
	})
}

// ListFormHistory lists a form's status history, newest first
func (h *FormHandler) ListFormHistory(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	histories, err := h.formService.ListHistory(user, c.Param("id"))
	if err != nil {
		respondFormError(c, err)
		return
	}

	historyDTOs := make([]dto.FormHistoryDTO, len(histories))
	for i, history := range histories {
		historyDTOs[i] = dto.ToFormHistoryDTO(history)
	}

	c.JSON(http.StatusOK, gin.H{
		"history": historyDTOs,
	})
}

// requireActor extracts the authenticated user and the session's active
// organization, responding with the appropriate error when either is
// missing.
func requireActor(c *gin.Context) (*models.User, string, bool) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, "", false
	}

	activeOrgID, exists := middleware.GetActiveOrganizationID(c)
	if !exists {
		apierrors.BadRequest(c, "No active organization selected")
		return nil, "", false
	}

	return user, activeOrgID, true
}

func respondFormError(c *gin.Context, err error) {
	if respondGuardError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFormTitleRequired),
		errors.Is(err, services.ErrInvalidFormStatus),
		errors.Is(err, services.ErrFieldNameRequired),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrDuplicateFieldOrder):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoActingMember),
		errors.Is(err, services.ErrNotFormOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
