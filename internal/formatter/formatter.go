// Package formatter turns free-form text into a display name.
package formatter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	separators = strings.NewReplacer("-", " ", "_", " ")
	nonLetters = regexp.MustCompile(`[^a-zA-Z ]`)
)

// Format normalizes raw into a capitalized, single-spaced name made only of
// ASCII letters. Hyphens and underscores separate words; every other
// non-letter is dropped. ok is false when no letters remain.
func Format(raw string) (name string, ok bool) {
	cleaned := nonLetters.ReplaceAllString(separators.Replace(raw), "")
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "", false
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.Und).String(strings.Join(words, " ")), true
}
