// Package validation checks plate format patterns and per-country template
// sets for structural validity. Outcomes are data, never Go errors: callers
// decide whether a failed result blocks a save.
package validation

import (
	"fmt"
	"strings"

	"plate-service/internal/model"
	"plate-service/internal/pattern"
)

const (
	MinTemplateLength = 2
	MaxTemplateLength = 12

	MaxTemplatesPerCountry = 2

	shortPatternLength = 5
	longPatternLength  = 10

	// One symbol outnumbering the other by more than this factor
	// is flagged as an unusual mix for a plate format.
	symbolRatioLimit = 5
)

type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidatePattern checks a single pattern. Any error makes the pattern
// invalid; warnings are advisory and never block.
func ValidatePattern(p string) Result {
	var errs, warnings []string

	if p == "" {
		return Result{Valid: false, Errors: []string{"Pattern cannot be empty"}}
	}

	length := len([]rune(p))
	if length < MinTemplateLength {
		errs = append(errs, fmt.Sprintf("Pattern must be at least %d characters long", MinTemplateLength))
	}
	if length > MaxTemplateLength {
		errs = append(errs, fmt.Sprintf("Pattern must be at most %d characters long", MaxTemplateLength))
	}

	letters, digits, invalid := countSymbols(p)
	if invalid > 0 {
		errs = append(errs, "Pattern may only contain the symbols L and N")
	}
	if letters == 0 {
		errs = append(errs, "Pattern must contain at least one letter position (L)")
	}
	if digits == 0 {
		errs = append(errs, "Pattern must contain at least one number position (N)")
	}

	if length < shortPatternLength {
		warnings = append(warnings, "Pattern is quite short for a plate format")
	}
	if length > longPatternLength {
		warnings = append(warnings, "Pattern is quite long for a plate format")
	}
	if letters > symbolRatioLimit*digits || digits > symbolRatioLimit*letters {
		if letters > 0 && digits > 0 {
			warnings = append(warnings, "Letter-to-number ratio is unusual for a plate format")
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}

// ValidateTemplateSet checks the templates of one country as a whole:
// at most two templates, priorities exactly {1} or {1, 2}, no duplicate
// patterns or display names, and every pattern individually valid.
func ValidateTemplateSet(templates []model.PlateTemplate) Result {
	var errs, warnings []string

	if len(templates) > MaxTemplatesPerCountry {
		errs = append(errs, fmt.Sprintf("Maximum %d templates allowed per country", MaxTemplatesPerCountry))
	}

	switch len(templates) {
	case 1:
		if templates[0].Priority != 1 {
			errs = append(errs, "A single template must have priority 1")
		}
	case 2:
		priorities := map[int]bool{templates[0].Priority: true, templates[1].Priority: true}
		if !priorities[1] || !priorities[2] {
			errs = append(errs, "Two templates must have priorities 1 and 2")
		}
	}

	seenPatterns := make(map[string]bool)
	seenNames := make(map[string]bool)
	for _, tpl := range templates {
		if seenPatterns[tpl.Pattern] {
			errs = appendUnique(errs, "Duplicate template patterns are not allowed")
		}
		seenPatterns[tpl.Pattern] = true

		name := strings.TrimSpace(tpl.DisplayName)
		if name != "" {
			if seenNames[name] {
				errs = appendUnique(errs, "Duplicate template display names are not allowed")
			}
			seenNames[name] = true
		}
	}

	for i, tpl := range templates {
		result := ValidatePattern(tpl.Pattern)
		for _, msg := range result.Errors {
			errs = append(errs, fmt.Sprintf("Template %d: %s", i+1, msg))
		}
		for _, msg := range result.Warnings {
			warnings = append(warnings, fmt.Sprintf("Template %d: %s", i+1, msg))
		}
	}

	for i := 0; i < len(templates); i++ {
		for j := i + 1; j < len(templates); j++ {
			a, b := templates[i].Pattern, templates[j].Pattern
			if a == b {
				continue
			}
			if len(a) == len(b) {
				warnings = append(warnings, fmt.Sprintf(
					"Templates %d and %d have the same length; consider different lengths for more reliable recognition", i+1, j+1))
				if differByOne(a, b) {
					warnings = append(warnings, fmt.Sprintf(
						"Templates %d and %d are very similar and may cause recognition ambiguity", i+1, j+1))
				}
			}
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}

// Suggest returns advisory guidance for common authoring mistakes.
// It never blocks an operation.
func Suggest(p string) []string {
	var suggestions []string

	if p == "" {
		return []string{"Describe the plate format with L for letter positions and N for number positions, e.g. LLNNLLL for plates like AB12CDE"}
	}

	letters, digits, _ := countSymbols(p)
	if digits == 0 && letters > 0 {
		suggestions = append(suggestions, "Add at least one number position (N); plate formats normally mix letters and numbers")
	}
	if letters == 0 && digits > 0 {
		suggestions = append(suggestions, "Add at least one letter position (L); plate formats normally mix letters and numbers")
	}

	length := len([]rune(p))
	if length < MinTemplateLength {
		suggestions = append(suggestions, fmt.Sprintf("Extend the pattern to at least %d characters", MinTemplateLength))
	}
	if length > MaxTemplateLength {
		suggestions = append(suggestions, fmt.Sprintf("Shorten the pattern to at most %d characters", MaxTemplateLength))
	}

	return suggestions
}

func countSymbols(p string) (letters, digits, invalid int) {
	for _, r := range p {
		switch r {
		case pattern.SymbolLetter:
			letters++
		case pattern.SymbolDigit:
			digits++
		default:
			invalid++
		}
	}
	return letters, digits, invalid
}

func differByOne(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	diff := 0
	for i := range ra {
		if ra[i] != rb[i] {
			diff++
		}
	}
	return diff == 1
}

func appendUnique(messages []string, msg string) []string {
	for _, existing := range messages {
		if existing == msg {
			return messages
		}
	}
	return append(messages, msg)
}
