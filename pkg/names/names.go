// Package names canonicalizes free-text resource names so that inputs
// differing only by case or whitespace collide for uniqueness checks
// while keeping a readable display form.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalized holds the two canonical forms of a name. Display is what
// gets stored and shown; Key is used only for equality and lookup.
type Normalized struct {
	Display string
	Key     string
}

// Normalize trims the input and title-cases each whitespace-separated
// word for the display form, collapsing internal whitespace runs to
// single spaces. The comparison key is the lowercased display form, so
// normalizing is a fixed point: Normalize(Normalize(s).Display) equals
// Normalize(s). An input that is empty after trimming normalizes to
// empty forms; rejecting those is the caller's job.
func Normalize(raw string) Normalized {
	if strings.TrimSpace(raw) == "" {
		return Normalized{}
	}

	words := strings.Fields(strings.ToLower(raw))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	display := strings.Join(words, " ")

	return Normalized{
		Display: display,
		Key:     strings.ToLower(display),
	}
}

// Key returns just the comparison key for raw.
func Key(raw string) string {
	return Normalize(raw).Key
}
