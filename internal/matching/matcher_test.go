package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plate-service/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab12-cde", "AB12CDE"},
		{" 123 456 ", "123456"},
		{"AB.12.CDE", "AB12CDE"},
		{"אב1234", "1234"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"ab12-cde", "  12 34 56", "AB!@#12cde", ""} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func activeTpl(id uint, pattern string, priority int) model.PlateTemplate {
	return model.PlateTemplate{ID: id, Pattern: pattern, Priority: priority, Active: true}
}

func TestMatch(t *testing.T) {
	t.Run("uk style plate with separators", func(t *testing.T) {
		result := Match("ab12-cde", []model.PlateTemplate{activeTpl(1, "LLNNLLL", 1)})
		require.True(t, result.Matched)
		assert.Equal(t, "AB12CDE", result.Formatted)
		assert.Equal(t, uint(1), result.Template.ID)
	})

	t.Run("length selects the secondary template", func(t *testing.T) {
		templates := []model.PlateTemplate{
			activeTpl(1, "NNNNNN", 1),
			activeTpl(2, "NNNNNNN", 2),
		}
		result := Match("1234567", templates)
		require.True(t, result.Matched)
		assert.Equal(t, uint(2), result.Template.ID)
	})

	t.Run("priority one wins when both accept", func(t *testing.T) {
		templates := []model.PlateTemplate{
			activeTpl(2, "NNNNNN", 2),
			activeTpl(1, "NNNNNN", 1),
		}
		result := Match("123456", templates)
		require.True(t, result.Matched)
		assert.Equal(t, 1, result.Template.Priority)
	})

	t.Run("inactive templates are ignored", func(t *testing.T) {
		templates := []model.PlateTemplate{
			{ID: 1, Pattern: "NNNNNN", Priority: 1, Active: false},
		}
		assert.False(t, Match("123456", templates).Matched)
	})

	t.Run("no active templates", func(t *testing.T) {
		assert.False(t, Match("123456", nil).Matched)
	})

	t.Run("no template of matching length", func(t *testing.T) {
		result := Match("12345", []model.PlateTemplate{activeTpl(1, "NNNNNN", 1)})
		assert.False(t, result.Matched)
		assert.Nil(t, result.Template)
		assert.Empty(t, result.Formatted)
	})

	t.Run("match of normalized equals match of raw", func(t *testing.T) {
		templates := []model.PlateTemplate{activeTpl(1, "LLNNLLL", 1)}
		raw := Match("ab12-cde", templates)
		normalized := Match(Normalize("ab12-cde"), templates)
		assert.Equal(t, raw, normalized)
	})
}
