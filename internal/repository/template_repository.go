package repository

import (
	"github.com/reviewdesk/form-review-api/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// CreateWithFields creates a template and its fields in one transaction
func (r *GormTemplateRepository) CreateWithFields(template *models.FormTemplate, fields []models.FormTemplateField) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(template).Error; err != nil {
			return err
		}

		if len(fields) > 0 {
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a template by ID with its fields ordered by field_order
func (r *GormTemplateRepository) FindByID(id string) (*models.FormTemplate, error) {
	var template models.FormTemplate
	if err := r.db.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("field_order ASC")
	}).Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// List lists all templates ordered by name
func (r *GormTemplateRepository) List() ([]models.FormTemplate, error) {
	var templates []models.FormTemplate
	if err := r.db.Order("name ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Update saves template metadata and optionally replaces the field set.
// Field replacement keeps no per-field history: every prior row for the
// template is deleted and the new set inserted.
func (r *GormTemplateRepository) Update(template *models.FormTemplate, fields []models.FormTemplateField, replaceFields bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(template).Error; err != nil {
			return err
		}

		if !replaceFields {
			return nil
		}

		if err := tx.Where("template_id = ?", template.ID).
			Delete(&models.FormTemplateField{}).Error; err != nil {
			return err
		}

		if len(fields) > 0 {
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a template and its fields in one transaction
func (r *GormTemplateRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).
			Delete(&models.FormTemplateField{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.FormTemplate{}).Error
	})
}
