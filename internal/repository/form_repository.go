package repository

import (
	"github.com/reviewdesk/form-review-api/internal/database"
	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/utils"
	"gorm.io/gorm"
)

// GormFormRepository is a GORM implementation of FormRepository
type GormFormRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a new FormRepository
func NewFormRepository(db *gorm.DB) FormRepository {
	return &GormFormRepository{db: db}
}

// CreateWithFields creates a form and its fields in one transaction
func (r *GormFormRepository) CreateWithFields(form *models.Form, fields []models.FormField) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(form).Error; err != nil {
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

// FindByID finds a form by ID with its fields ordered by field_order
func (r *GormFormRepository) FindByID(id string) (*models.Form, error) {
	var form models.Form
	if err := r.db.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("field_order ASC")
	}).Where("id = ?", id).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// ListByOrganization lists forms belonging to an organization, paginated,
// along with the total form count
func (r *GormFormRepository) ListByOrganization(organizationID string, params utils.PaginationParams) ([]models.Form, int64, error) {
	var total int64
	if err := r.db.Model(&models.Form{}).
		Where("organization_id = ?", organizationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var forms []models.Form
	if err := r.db.Scopes(database.Paginate(params)).
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&forms).Error; err != nil {
		return nil, 0, err
	}
	return forms, total, nil
}

// Update saves form metadata and optionally replaces the field set and
// appends a history row, all in one transaction
func (r *GormFormRepository) Update(form *models.Form, fields []models.FormField, replaceFields bool, history *models.FormHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(form).Error; err != nil {
			return err
		}

		if replaceFields {
			if err := tx.Where("form_id = ?", form.ID).
				Delete(&models.FormField{}).Error; err != nil {
				return err
			}

			if len(fields) > 0 {
				if err := tx.Create(&fields).Error; err != nil {
					return err
				}
			}
		}

		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a form and its fields in one transaction
func (r *GormFormRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).
			Delete(&models.FormField{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Form{}).Error
	})
}

// FindFieldByID finds a single form field
func (r *GormFormRepository) FindFieldByID(id string) (*models.FormField, error) {
	var field models.FormField
	if err := r.db.Where("id = ?", id).First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// ListHistory lists history rows for a form, newest first
func (r *GormFormRepository) ListHistory(formID string) ([]models.FormHistory, error) {
	var histories []models.FormHistory
	if err := r.db.Where("form_id = ?", formID).
		Order("created_at DESC").
		Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}
