package repository

import (
	"context"

	"gorm.io/gorm"

	"plate-service/internal/model"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetForCountry returns the active templates of one country ordered by
// priority, which is the order the matching engine tries them in.
func (r *TemplateRepository) GetForCountry(ctx context.Context, countryID string) ([]model.PlateTemplate, error) {
	var templates []model.PlateTemplate
	err := r.db.WithContext(ctx).
		Where("country_id = ? AND is_active = ?", countryID, true).
		Order("priority ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// GetAllForCountry includes inactive templates; used by the admin surface.
func (r *TemplateRepository) GetAllForCountry(ctx context.Context, countryID string) ([]model.PlateTemplate, error) {
	var templates []model.PlateTemplate
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("priority ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepository) CountForCountry(ctx context.Context, countryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PlateTemplate{}).
		Where("country_id = ?", countryID).
		Count(&count).Error
	return count, err
}

// ReplaceForCountry swaps a country's whole template set in one
// transaction: delete everything, then insert the new set. Concurrent
// readers observe either the old set or the new one, never a partial mix.
func (r *TemplateRepository) ReplaceForCountry(ctx context.Context, countryID string, templates []model.PlateTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("country_id = ?", countryID).Delete(&model.PlateTemplate{}).Error; err != nil {
			return err
		}
		for i := range templates {
			templates[i].ID = 0
			templates[i].CountryID = countryID
			if err := tx.Create(&templates[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateSeeded inserts a seeded default template directly, without passing
// through the rule engine. Only the startup seeding path uses this.
func (r *TemplateRepository) CreateSeeded(ctx context.Context, template *model.PlateTemplate) error {
	template.Source = model.TemplateSourceSeeded
	return r.db.WithContext(ctx).Create(template).Error
}
