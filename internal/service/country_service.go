package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plate-service/internal/model"
)

type CountryService struct {
	countries CountryStore
	templates TemplateStore
}

func NewCountryService(countries CountryStore, templates TemplateStore) *CountryService {
	return &CountryService{
		countries: countries,
		templates: templates,
	}
}

type CountryOverview struct {
	model.Country
	TemplateCount int64 `json:"template_count"`
}

func (s *CountryService) List(ctx context.Context, principal model.Principal) ([]CountryOverview, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]CountryOverview, 0, len(countries))
	for _, country := range countries {
		count, err := s.templates.CountForCountry(ctx, country.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, CountryOverview{Country: country, TemplateCount: count})
	}

	return overviews, nil
}

func (s *CountryService) SetEnabled(ctx context.Context, principal model.Principal, countryID string, enabled bool) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	err := s.countries.SetEnabled(ctx, countryID, enabled)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
