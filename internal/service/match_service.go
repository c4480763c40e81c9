package service

import (
	"context"
	"time"

	"plate-service/internal/client"
	"plate-service/internal/matching"
	"plate-service/internal/model"
)

type DetectionSource interface {
	GetRecentDetections(ctx context.Context, since time.Time, cameraID string) ([]client.PlateDetection, error)
}

// MatchService answers "is this observed text a valid plate for this
// country, and how should it be written".
type MatchService struct {
	countries  CountryStore
	templates  TemplateStore
	detections DetectionSource
}

func NewMatchService(countries CountryStore, templates TemplateStore, detections DetectionSource) *MatchService {
	return &MatchService{
		countries:  countries,
		templates:  templates,
		detections: detections,
	}
}

func (s *MatchService) MatchPlate(ctx context.Context, principal model.Principal, countryID, text string) (*matching.Result, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	if countryID == "" {
		return nil, ErrInvalidInput
	}

	country, err := s.countries.GetByID(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if country == nil || !country.Enabled {
		return nil, ErrNotFound
	}

	templates, err := s.templates.GetForCountry(ctx, countryID)
	if err != nil {
		return nil, err
	}

	result := matching.Match(text, templates)
	return &result, nil
}

// DetectionMatch pairs one external detection with its match outcome.
type DetectionMatch struct {
	Detection client.PlateDetection `json:"detection"`
	Result    matching.Result       `json:"result"`
}

// MatchRecentDetections pulls detections from the recognition service and
// matches each against its country's active templates. Detections for
// unknown or disabled countries come back unmatched rather than failing
// the whole batch.
func (s *MatchService) MatchRecentDetections(ctx context.Context, principal model.Principal, since time.Time, cameraID string) ([]DetectionMatch, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	detections, err := s.detections.GetRecentDetections(ctx, since, cameraID)
	if err != nil {
		return nil, err
	}

	templatesByCountry := make(map[string][]model.PlateTemplate)

	matches := make([]DetectionMatch, 0, len(detections))
	for _, detection := range detections {
		templates, ok := templatesByCountry[detection.CountryID]
		if !ok {
			country, err := s.countries.GetByID(ctx, detection.CountryID)
			if err != nil {
				return nil, err
			}
			if country != nil && country.Enabled {
				templates, err = s.templates.GetForCountry(ctx, detection.CountryID)
				if err != nil {
					return nil, err
				}
			}
			templatesByCountry[detection.CountryID] = templates
		}

		matches = append(matches, DetectionMatch{
			Detection: detection,
			Result:    matching.Match(detection.Text, templates),
		})
	}

	return matches, nil
}
