package toplinks

import (
	"strings"
	"unicode"
)

// NormalizeText lower-cases s and removes every rune that is not an ASCII
// letter, an ASCII digit, or whitespace. The result is never longer than s.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize returns a copy of d with Title and Description canonicalized by
// NormalizeText. Link, CapturedAt and Source are unchanged and row order is
// preserved. The input is not modified.
func Normalize(d Dataset) Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, r := range d {
		r.Title = NormalizeText(r.Title)
		r.Description = NormalizeText(r.Description)
		out[i] = r
	}
	return out
}
