package service

import (
	"context"
	"errors"
	"sort"

	"plate-service/internal/model"
	"plate-service/internal/pattern"
	"plate-service/internal/validation"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")

	ErrCountryNotConfigurable = errors.New("country not found or disabled")
)

// SetValidationError carries the full rule-engine result of a rejected
// template set. Error() reports the first blocking message; callers that
// want every message inspect Result.
type SetValidationError struct {
	Result validation.Result
}

func (e *SetValidationError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "invalid template set"
	}
	return e.Result.Errors[0]
}

func (e *SetValidationError) Unwrap() error {
	return ErrInvalidInput
}

type CountryStore interface {
	List(ctx context.Context) ([]model.Country, error)
	GetEnabled(ctx context.Context) ([]model.Country, error)
	GetByID(ctx context.Context, id string) (*model.Country, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
	GetWithoutActiveTemplates(ctx context.Context) ([]model.Country, error)
}

type TemplateStore interface {
	GetForCountry(ctx context.Context, countryID string) ([]model.PlateTemplate, error)
	GetAllForCountry(ctx context.Context, countryID string) ([]model.PlateTemplate, error)
	CountForCountry(ctx context.Context, countryID string) (int64, error)
	ReplaceForCountry(ctx context.Context, countryID string, templates []model.PlateTemplate) error
}

// TemplateService replaces a country's template set as a whole:
// validate first, then commit atomically through the store.
type TemplateService struct {
	countries CountryStore
	templates TemplateStore
}

func NewTemplateService(countries CountryStore, templates TemplateStore) *TemplateService {
	return &TemplateService{
		countries: countries,
		templates: templates,
	}
}

func (s *TemplateService) ListForCountry(ctx context.Context, principal model.Principal, countryID string) ([]model.PlateTemplate, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	country, err := s.countries.GetByID(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, ErrNotFound
	}

	return s.templates.GetAllForCountry(ctx, countryID)
}

// PrepareReplacement runs the pre-save checks for a country's new template
// set and returns the normalized set ready to commit: derived fields filled
// in, unpersisted templates (zero ID) left for the store to create, ordered
// by priority. It writes nothing.
func (s *TemplateService) PrepareReplacement(ctx context.Context, countryID string, candidates []model.PlateTemplate) ([]model.PlateTemplate, error) {
	country, err := s.countries.GetByID(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if country == nil || !country.Enabled {
		return nil, ErrCountryNotConfigurable
	}

	result := validation.ValidateTemplateSet(candidates)
	if !result.Valid {
		return nil, &SetValidationError{Result: result}
	}

	normalized := make([]model.PlateTemplate, len(candidates))
	copy(normalized, candidates)
	for i := range normalized {
		normalized[i].CountryID = countryID
		normalized[i].Source = model.TemplateSourceUser
		normalized[i].RegexPattern = pattern.Compile(normalized[i].Pattern).Regex()
		if normalized[i].Description == "" {
			normalized[i].Description = pattern.GenerateDescription(normalized[i].Pattern)
		}
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Priority < normalized[j].Priority
	})

	return normalized, nil
}

// CommitReplacement hands the prepared set to the store's atomic replace.
// Store failures are returned unchanged; no retries here.
func (s *TemplateService) CommitReplacement(ctx context.Context, countryID string, normalized []model.PlateTemplate) error {
	return s.templates.ReplaceForCountry(ctx, countryID, normalized)
}

// ReplaceTemplates is the prepare-then-commit path the API uses.
func (s *TemplateService) ReplaceTemplates(ctx context.Context, principal model.Principal, countryID string, candidates []model.PlateTemplate) ([]model.PlateTemplate, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	normalized, err := s.PrepareReplacement(ctx, countryID, candidates)
	if err != nil {
		return nil, err
	}

	if err := s.CommitReplacement(ctx, countryID, normalized); err != nil {
		return nil, err
	}

	return s.templates.GetAllForCountry(ctx, countryID)
}
