package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plate-service/internal/model"
)

var (
	admin    = model.Principal{Role: model.RoleAdmin}
	operator = model.Principal{Role: model.RoleOperator}
)

func enabledCountry(id, name string) model.Country {
	return model.Country{ID: id, DisplayName: name, Enabled: true}
}

func TestPrepareReplacement(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown country", func(t *testing.T) {
		svc := NewTemplateService(newMemoryCountryStore(), newMemoryTemplateStore())
		_, err := svc.PrepareReplacement(ctx, "XX", nil)
		assert.ErrorIs(t, err, ErrCountryNotConfigurable)
	})

	t.Run("disabled country", func(t *testing.T) {
		countries := newMemoryCountryStore(model.Country{ID: "GB", DisplayName: "United Kingdom", Enabled: false})
		svc := NewTemplateService(countries, newMemoryTemplateStore())
		_, err := svc.PrepareReplacement(ctx, "GB", nil)
		assert.ErrorIs(t, err, ErrCountryNotConfigurable)
	})

	t.Run("invalid set carries every validation message", func(t *testing.T) {
		countries := newMemoryCountryStore(enabledCountry("IL", "Israel"))
		svc := NewTemplateService(countries, newMemoryTemplateStore())

		_, err := svc.PrepareReplacement(ctx, "IL", []model.PlateTemplate{
			{Pattern: "NNNNNN", Priority: 1, DisplayName: "A", Active: true},
			{Pattern: "NNNNNN", Priority: 2, DisplayName: "B", Active: true},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)

		var setErr *SetValidationError
		require.ErrorAs(t, err, &setErr)
		assert.Equal(t, setErr.Result.Errors[0], err.Error())
		assert.Contains(t, setErr.Result.Errors, "Duplicate template patterns are not allowed")
		// Both patterns also fail the strict per-pattern rules.
		assert.Greater(t, len(setErr.Result.Errors), 1)
	})

	t.Run("fills derived fields and orders by priority", func(t *testing.T) {
		countries := newMemoryCountryStore(enabledCountry("GB", "United Kingdom"))
		svc := NewTemplateService(countries, newMemoryTemplateStore())

		normalized, err := svc.PrepareReplacement(ctx, "GB", []model.PlateTemplate{
			{Pattern: "LNNNN", Priority: 2, DisplayName: "Legacy", Active: true},
			{Pattern: "LLNNLLL", Priority: 1, DisplayName: "Current", Active: true},
		})
		require.NoError(t, err)
		require.Len(t, normalized, 2)

		assert.Equal(t, 1, normalized[0].Priority)
		assert.Equal(t, "LLNNLLL", normalized[0].Pattern)
		assert.Equal(t, "GB", normalized[0].CountryID)
		assert.Equal(t, model.TemplateSourceUser, normalized[0].Source)
		assert.Equal(t, "^[A-Z][A-Z][0-9][0-9][A-Z][A-Z][A-Z]$", normalized[0].RegexPattern)
		assert.Equal(t, "2 letters, 2 numbers, 3 letters (7 characters)", normalized[0].Description)
		assert.Zero(t, normalized[0].ID)
	})

	t.Run("supplied description is kept", func(t *testing.T) {
		countries := newMemoryCountryStore(enabledCountry("GB", "United Kingdom"))
		svc := NewTemplateService(countries, newMemoryTemplateStore())

		normalized, err := svc.PrepareReplacement(ctx, "GB", []model.PlateTemplate{
			{Pattern: "LLNNLLL", Priority: 1, DisplayName: "Current", Description: "DVLA current style", Active: true},
		})
		require.NoError(t, err)
		assert.Equal(t, "DVLA current style", normalized[0].Description)
	})
}

func TestReplaceTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("requires admin", func(t *testing.T) {
		svc := NewTemplateService(newMemoryCountryStore(enabledCountry("IL", "Israel")), newMemoryTemplateStore())
		_, err := svc.ReplaceTemplates(ctx, operator, "IL", nil)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("round trip stores exactly the submitted set", func(t *testing.T) {
		templates := newMemoryTemplateStore()
		svc := NewTemplateService(newMemoryCountryStore(enabledCountry("GB", "United Kingdom")), templates)

		stored, err := svc.ReplaceTemplates(ctx, admin, "GB", []model.PlateTemplate{
			{Pattern: "LLNNLLL", Priority: 1, DisplayName: "Current", Active: true},
		})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, 1, stored[0].Priority)
		assert.Equal(t, "LLNNLLL", stored[0].Pattern)
		assert.NotZero(t, stored[0].ID)

		fromStore, err := templates.GetForCountry(ctx, "GB")
		require.NoError(t, err)
		require.Len(t, fromStore, 1)
		assert.Equal(t, stored[0], fromStore[0])
	})

	t.Run("replacement swaps the whole set", func(t *testing.T) {
		templates := newMemoryTemplateStore()
		svc := NewTemplateService(newMemoryCountryStore(enabledCountry("GB", "United Kingdom")), templates)

		_, err := svc.ReplaceTemplates(ctx, admin, "GB", []model.PlateTemplate{
			{Pattern: "LLNNLLL", Priority: 1, DisplayName: "Current", Active: true},
			{Pattern: "LNNNN", Priority: 2, DisplayName: "Legacy", Active: true},
		})
		require.NoError(t, err)

		stored, err := svc.ReplaceTemplates(ctx, admin, "GB", []model.PlateTemplate{
			{Pattern: "LLNNNN", Priority: 1, DisplayName: "Revised", Active: true},
		})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "LLNNNN", stored[0].Pattern)
	})

	t.Run("failed commit leaves the old set intact", func(t *testing.T) {
		templates := newMemoryTemplateStore()
		svc := NewTemplateService(newMemoryCountryStore(enabledCountry("GB", "United Kingdom")), templates)

		_, err := svc.ReplaceTemplates(ctx, admin, "GB", []model.PlateTemplate{
			{Pattern: "LLNNLLL", Priority: 1, DisplayName: "Current", Active: true},
		})
		require.NoError(t, err)

		storeFailure := errors.New("duplicate key value violates unique constraint")
		templates.replaceErr = storeFailure

		_, err = svc.ReplaceTemplates(ctx, admin, "GB", []model.PlateTemplate{
			{Pattern: "LLNNNN", Priority: 1, DisplayName: "Revised", Active: true},
		})
		// Store failures surface unchanged.
		assert.ErrorIs(t, err, storeFailure)

		existing, err := templates.GetForCountry(ctx, "GB")
		require.NoError(t, err)
		require.Len(t, existing, 1)
		assert.Equal(t, "LLNNLLL", existing[0].Pattern)
	})

	t.Run("invalid set never reaches the store", func(t *testing.T) {
		templates := newMemoryTemplateStore()
		svc := NewTemplateService(newMemoryCountryStore(enabledCountry("IL", "Israel")), templates)

		_, err := svc.ReplaceTemplates(ctx, admin, "IL", []model.PlateTemplate{
			{Pattern: "LLNN", Priority: 2, DisplayName: "Only", Active: true},
		})
		require.Error(t, err)
		assert.Zero(t, templates.replaceCall)
	})
}

func TestListForCountry(t *testing.T) {
	ctx := context.Background()
	templates := newMemoryTemplateStore()
	svc := NewTemplateService(newMemoryCountryStore(enabledCountry("GB", "United Kingdom")), templates)

	_, err := svc.ListForCountry(ctx, operator, "GB")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.ListForCountry(ctx, admin, "XX")
	assert.ErrorIs(t, err, ErrNotFound)

	listed, err := svc.ListForCountry(ctx, admin, "GB")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
