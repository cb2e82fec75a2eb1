// Package naming turns raw directory names into human-readable title guesses.
package naming

import (
	"strings"
	"unicode"
)

// InferTitle derives a search title from a directory segment such as
// "SuperFoo2". A space is inserted before every upper-case letter and every
// digit, underscores are dropped, and the result is trimmed. No separator is
// inserted when the previous rune is already a space, so already-spaced input
// comes back unchanged.
func InferTitle(segment string) string {
	var b strings.Builder
	b.Grow(len(segment) + 8)
	prevSpace := true
	for _, r := range segment {
		switch {
		case r == '_':
			continue
		case unicode.IsUpper(r) || unicode.IsDigit(r):
			if !prevSpace {
				b.WriteRune(' ')
			}
			b.WriteRune(r)
			prevSpace = false
		default:
			b.WriteRune(r)
			prevSpace = unicode.IsSpace(r)
		}
	}
	return strings.TrimSpace(b.String())
}
