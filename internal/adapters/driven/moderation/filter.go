// Package moderation provides a lightweight RO/EN profanity filter.
// It runs before retrieval so blocked queries never reach the AI providers.
package moderation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

var _ driven.Moderator = (*Filter)(nil)

// leetMap undoes common leetspeak substitutions before matching.
var leetMap = map[rune]rune{
	'0': 'o', '1': 'i', '3': 'e', '4': 'a', '5': 's', '7': 't',
	'@': 'a', '$': 's', '€': 'e', '£': 'l', '!': 'i',
}

// defaultBlacklist is a compact RO/EN list; extend per policy.
var defaultBlacklist = []string{
	// English common
	"fuck", "fucking", "motherfucker", "mf", "shit", "bullshit", "bastard",
	"asshole", "dick", "prick", "cunt", "slut", "whore", "retard",
	// Romanian common (non-exhaustive)
	"prost", "idiot", "bou", "tampit", "handicapat", "jegos", "nesimtit",
	"pula", "pizda", "muie", "futu", "futut", "fut", "curve", "curva", "panarama",
}

var (
	nonLetterRuns = regexp.MustCompile(`[^a-zăâîșşţțoe ]+`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

// Filter detects offensive language in queries.
type Filter struct {
	blacklist []string
}

// NewFilter creates a filter with the default blacklist.
func NewFilter() *Filter {
	return &Filter{blacklist: defaultBlacklist}
}

// NewFilterWithBlacklist creates a filter with a custom term list.
func NewFilterWithBlacklist(terms []string) *Filter {
	return &Filter{blacklist: terms}
}

// Check returns (true, offendingTerm) when the text contains a blacklisted
// term after normalisation, else (false, "").
func (f *Filter) Check(text string) (bool, string) {
	normText := normalizeText(text)
	if normText == "" {
		return false, ""
	}

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(normText) {
		tokens[tok] = struct{}{}
	}
	for _, w := range f.blacklist {
		if _, ok := tokens[w]; ok {
			return true, w
		}
	}

	// Word-boundary matches catch obfuscation that survives tokenising.
	padded := " " + normText + " "
	for _, w := range f.blacklist {
		if strings.Contains(padded, " "+w+" ") {
			return true, w
		}
	}
	return false, ""
}

// normalizeText folds diacritics, undoes leetspeak, strips punctuation and
// collapses character repeats ("cooool" -> "cool").
func normalizeText(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	folded = strings.Map(func(r rune) rune {
		if mapped, ok := leetMap[r]; ok {
			return mapped
		}
		return r
	}, folded)

	folded = nonLetterRuns.ReplaceAllString(folded, " ")
	folded = collapseRepeats(folded)
	folded = spaceRuns.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// collapseRepeats caps runs of the same rune at two ("cooool" -> "cool").
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
