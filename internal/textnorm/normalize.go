// Package textnorm provides the text normalisation used before string
// comparison anywhere in libris: Unicode decomposition, diacritic stripping,
// case folding and punctuation collapsing.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold decomposes s (NFKD) and strips combining marks, so "Stăpânul"
// becomes "Stapanul". The result keeps the original casing.
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize folds diacritics, lowercases, replaces any run of non-word
// characters with a single space and trims. Two titles compare equal iff
// their normalised forms are equal.
func Normalize(s string) string {
	s = strings.ToLower(Fold(s))
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// Slug builds a stable ascii identifier from s: diacritics are folded away,
// alphanumerics kept, separators become single dashes. Returns "id" for
// inputs with no usable characters, so slugs are never empty.
func Slug(s string) string {
	folded := strings.ToLower(Fold(s))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r > unicode.MaxASCII:
			// NFKD leftovers with no ascii mapping are dropped.
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "id"
	}
	return slug
}
