package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reviewdesk/form-review-api/internal/dto"
	apierrors "github.com/reviewdesk/form-review-api/internal/errors"
	"github.com/reviewdesk/form-review-api/internal/middleware"
	"github.com/reviewdesk/form-review-api/internal/services"
)

// TemplateHandler coordinates form template HTTP handlers.
type TemplateHandler struct {
	templateService *services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// ListTemplates returns all form templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates()
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": dto.ToTemplateDTOs(templates),
	})
}

// GetTemplate returns a form template with its fields
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, err := h.templateService.GetTemplate(c.Param("id"))
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTO(*template))
}

// CreateTemplate creates a form template with its field set
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTemplateRequest struct {
		Name        string                        `json:"name" binding:"required"`
		Description *string                       `json:"description"`
		Fields      []services.TemplateFieldInput `json:"fields" binding:"required"`
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(services.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		ActorID:     user.ID,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateDTO(*template))
}

// UpdateTemplate updates a template; a provided field list replaces the
// prior set wholesale
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateTemplateRequest struct {
		Name        *string                        `json:"name"`
		Description *string                        `json:"description"`
		Fields      *[]services.TemplateFieldInput `json:"fields"`
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Param("id"), services.UpdateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		ActorID:     user.ID,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTO(*template))
}

// DeleteTemplate removes a template and its fields
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.DeleteTemplate(c.Param("id")); err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Template deleted successfully",
	})
}

func respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTemplateNameRequired),
		errors.Is(err, services.ErrFieldNameRequired),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrDuplicateFieldOrder):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
