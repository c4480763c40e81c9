package service

import (
	"context"

	"plate-service/internal/model"
)

// ConfigurationStatus reports which enabled countries still lack an active
// template.
type ConfigurationStatus struct {
	Total              int             `json:"total"`
	Configured         int             `json:"configured"`
	NeedsConfiguration []model.Country `json:"needs_configuration"`
	FullyConfigured    bool            `json:"fully_configured"`
}

type StatusService struct {
	countries CountryStore
}

func NewStatusService(countries CountryStore) *StatusService {
	return &StatusService{countries: countries}
}

func (s *StatusService) GetConfigurationStatus(ctx context.Context, principal model.Principal) (*ConfigurationStatus, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	enabled, err := s.countries.GetEnabled(ctx)
	if err != nil {
		return nil, err
	}

	withoutActive, err := s.countries.GetWithoutActiveTemplates(ctx)
	if err != nil {
		return nil, err
	}

	status := ComputeStatus(enabled, withoutActive)
	return &status, nil
}

// ComputeStatus is pure aggregation over the two store queries: the
// countries that need configuration are exactly those without active
// templates, restricted to the enabled set.
func ComputeStatus(enabled []model.Country, withoutActive []model.Country) ConfigurationStatus {
	enabledIDs := make(map[string]bool, len(enabled))
	for _, country := range enabled {
		enabledIDs[country.ID] = true
	}

	needs := make([]model.Country, 0, len(withoutActive))
	for _, country := range withoutActive {
		if enabledIDs[country.ID] {
			needs = append(needs, country)
		}
	}

	return ConfigurationStatus{
		Total:              len(enabled),
		Configured:         len(enabled) - len(needs),
		NeedsConfiguration: needs,
		FullyConfigured:    len(needs) == 0,
	}
}
