// Package matching normalizes observed plate text and tests it against a
// country's templates in priority order.
package matching

import (
	"sort"
	"strings"

	"plate-service/internal/model"
	"plate-service/internal/pattern"
)

// Result is the outcome of a match attempt. A non-match is a normal
// negative result, not a failure.
type Result struct {
	Matched   bool                 `json:"matched"`
	Template  *model.PlateTemplate `json:"template,omitempty"`
	Formatted string               `json:"formatted,omitempty"`
}

// Normalize uppercases text and strips every character that is not an
// ASCII letter or digit. This is the shared normalization boundary of the
// recognition pipeline; the watchlist comparator builds on it by further
// stripping to digits only.
func Normalize(text string) string {
	upper := strings.ToUpper(text)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Match normalizes text and tries the active templates in ascending
// priority order. The first template whose pattern structurally accepts
// the normalized text wins; priority is the sole tie-break.
func Match(text string, templates []model.PlateTemplate) Result {
	normalized := Normalize(text)

	active := make([]model.PlateTemplate, 0, len(templates))
	for _, tpl := range templates {
		if tpl.Active {
			active = append(active, tpl)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	for i := range active {
		if pattern.Compile(active[i].Pattern).Matches(normalized) {
			return Result{Matched: true, Template: &active[i], Formatted: normalized}
		}
	}

	return Result{}
}
