package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"plate-service/internal/client"
	"plate-service/internal/model"
)

// In-memory store fakes for service tests. memoryTemplateStore mimics the
// transactional replace contract: a simulated failure leaves the stored
// set untouched.

type memoryCountryStore struct {
	countries     map[string]model.Country
	withoutActive []model.Country
}

func newMemoryCountryStore(countries ...model.Country) *memoryCountryStore {
	s := &memoryCountryStore{countries: make(map[string]model.Country)}
	for _, c := range countries {
		s.countries[c.ID] = c
	}
	return s
}

func (s *memoryCountryStore) List(ctx context.Context) ([]model.Country, error) {
	all := make([]model.Country, 0, len(s.countries))
	for _, c := range s.countries {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *memoryCountryStore) GetEnabled(ctx context.Context) ([]model.Country, error) {
	all, _ := s.List(ctx)
	enabled := make([]model.Country, 0, len(all))
	for _, c := range all {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	return enabled, nil
}

func (s *memoryCountryStore) GetByID(ctx context.Context, id string) (*model.Country, error) {
	c, ok := s.countries[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *memoryCountryStore) SetEnabled(ctx context.Context, id string, enabled bool) error {
	c, ok := s.countries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Enabled = enabled
	s.countries[id] = c
	return nil
}

func (s *memoryCountryStore) GetWithoutActiveTemplates(ctx context.Context) ([]model.Country, error) {
	return s.withoutActive, nil
}

type memoryTemplateStore struct {
	byCountry   map[string][]model.PlateTemplate
	nextID      uint
	replaceErr  error
	replaceCall int
}

func newMemoryTemplateStore() *memoryTemplateStore {
	return &memoryTemplateStore{byCountry: make(map[string][]model.PlateTemplate), nextID: 1}
}

func (s *memoryTemplateStore) GetForCountry(ctx context.Context, countryID string) ([]model.PlateTemplate, error) {
	var active []model.PlateTemplate
	for _, tpl := range s.byCountry[countryID] {
		if tpl.Active {
			active = append(active, tpl)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Priority < active[j].Priority })
	return active, nil
}

func (s *memoryTemplateStore) GetAllForCountry(ctx context.Context, countryID string) ([]model.PlateTemplate, error) {
	all := append([]model.PlateTemplate(nil), s.byCountry[countryID]...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Priority < all[j].Priority })
	return all, nil
}

func (s *memoryTemplateStore) CountForCountry(ctx context.Context, countryID string) (int64, error) {
	return int64(len(s.byCountry[countryID])), nil
}

func (s *memoryTemplateStore) ReplaceForCountry(ctx context.Context, countryID string, templates []model.PlateTemplate) error {
	s.replaceCall++
	if s.replaceErr != nil {
		return s.replaceErr
	}
	replaced := make([]model.PlateTemplate, 0, len(templates))
	for _, tpl := range templates {
		tpl.ID = s.nextID
		s.nextID++
		tpl.CountryID = countryID
		replaced = append(replaced, tpl)
	}
	s.byCountry[countryID] = replaced
	return nil
}

type staticDetectionSource struct {
	detections []client.PlateDetection
	err        error
}

func (s *staticDetectionSource) GetRecentDetections(ctx context.Context, since time.Time, cameraID string) ([]client.PlateDetection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detections, nil
}
