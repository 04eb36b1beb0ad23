// Package slug derives URL-safe identifiers from artwork titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug
const Separator = "-"

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks      = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// From lowercases s, folds accents to their base letters, replaces every run
// of non [a-z0-9] characters with a single separator and trims separators
// from both ends. It may return an empty string.
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	result := nonAlphanumeric.ReplaceAllString(strings.ToLower(folded), Separator)
	return strings.Trim(result, Separator)
}

// FromWithFallback returns From(s), or the first non-empty slug derived
// from the fallbacks when s yields nothing.
func FromWithFallback(s string, fallbacks ...string) string {
	if out := From(s); out != "" {
		return out
	}
	for _, fb := range fallbacks {
		if out := From(fb); out != "" {
			return out
		}
	}
	return ""
}
