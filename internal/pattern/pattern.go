// Package pattern compiles plate format patterns into positional matchers.
// A pattern is a string over the alphabet {L, N}: L stands for a letter
// position, N for a digit position.
package pattern

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	SymbolLetter = 'L'
	SymbolDigit  = 'N'
)

// Matcher tests candidate strings against one compiled pattern.
// The zero value matches only the empty string.
type Matcher struct {
	symbols []rune
}

// Compile accepts any string; validity is the caller's concern.
func Compile(p string) Matcher {
	return Matcher{symbols: []rune(p)}
}

func (m Matcher) String() string {
	return string(m.symbols)
}

// Matches reports whether candidate satisfies the pattern position by
// position: L accepts any Unicode letter, N accepts an ASCII digit.
// Candidates of a different length never match.
func (m Matcher) Matches(candidate string) bool {
	runes := []rune(candidate)
	if len(runes) != len(m.symbols) {
		return false
	}
	for i, sym := range m.symbols {
		switch sym {
		case SymbolLetter:
			if !unicode.IsLetter(runes[i]) {
				return false
			}
		case SymbolDigit:
			if runes[i] < '0' || runes[i] > '9' {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Regex renders the pattern as an anchored regular expression for external
// query layers: L becomes [A-Z], N becomes [0-9].
func (m Matcher) Regex() string {
	var b strings.Builder
	b.WriteByte('^')
	for _, sym := range m.symbols {
		switch sym {
		case SymbolLetter:
			b.WriteString("[A-Z]")
		case SymbolDigit:
			b.WriteString("[0-9]")
		}
	}
	b.WriteByte('$')
	return b.String()
}

// GenerateDescription summarizes a pattern as runs of letters and numbers,
// e.g. "LLNNLLL" -> "2 letters, 2 numbers, 3 letters (7 characters)".
// Used as the default template description when none is supplied.
func GenerateDescription(p string) string {
	runes := []rune(p)
	if len(runes) == 0 {
		return "Empty format"
	}

	var parts []string
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		count := j - i
		switch runes[i] {
		case SymbolLetter:
			parts = append(parts, pluralize(count, "letter"))
		case SymbolDigit:
			parts = append(parts, pluralize(count, "number"))
		default:
			parts = append(parts, fmt.Sprintf("%d unknown", count))
		}
		i = j
	}

	return fmt.Sprintf("%s (%s)", strings.Join(parts, ", "), pluralize(len(runes), "character"))
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
