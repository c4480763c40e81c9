package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plate-service/internal/model"
)

type CountryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) List(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	err := r.db.WithContext(ctx).Order("id ASC").Find(&countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *CountryRepository) GetEnabled(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("id ASC").
		Find(&countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *CountryRepository) GetByID(ctx context.Context, id string) (*model.Country, error) {
	if id == "" {
		return nil, nil
	}
	var country model.Country
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&country).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

func (r *CountryRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Country{}).
		Where("id = ?", id).
		Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetWithoutActiveTemplates returns the enabled countries that have zero
// active templates, via an anti-join against plate_templates.
func (r *CountryRepository) GetWithoutActiveTemplates(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN plate_templates pt ON pt.country_id = countries.id AND pt.is_active = ?", true).
		Where("countries.enabled = ?", true).
		Where("pt.id IS NULL").
		Order("countries.id ASC").
		Find(&countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}
