// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// fallbackBase stands in when normalization strips every character, e.g.
// symbol-only or non-Latin titles. Collisions on it resolve through
// MakeUnique like any other base.
const fallbackBase = "untitled"

// Make normalizes text into a lowercase, hyphen-separated slug with no
// leading or trailing hyphens. Non-empty input always yields a non-empty
// slug; text with no ASCII alphanumerics falls back to "untitled".
func Make(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return ""
	}
	s = strings.Trim(nonWord.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return fallbackBase
	}
	return s
}

// MakeUnique returns Make(text), appending -1, -2, ... until the result is
// absent from taken. The scan is linear in the number of collisions, which is
// fine at blog scale; callers run it inside the same transaction as the
// insert so the check and the write see one snapshot.
func MakeUnique(text string, taken map[string]struct{}) string {
	base := Make(text)
	if base == "" {
		base = fallbackBase
	}
	if _, used := taken[base]; !used {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, used := taken[candidate]; !used {
			return candidate
		}
	}
}

// Set builds the lookup set MakeUnique expects from a slice of slugs.
func Set(slugs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		set[s] = struct{}{}
	}
	return set
}
