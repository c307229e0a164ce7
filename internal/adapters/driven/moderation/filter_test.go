package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCleanText(t *testing.T) {
	f := NewFilter()

	for _, text := range []string{
		"o carte despre prietenie și magie",
		"vreau ceva cu aventură",
		"",
		"   ",
	} {
		blocked, term := f.Check(text)
		assert.False(t, blocked, "text %q", text)
		assert.Empty(t, term)
	}
}

func TestCheckDirectMatch(t *testing.T) {
	f := NewFilter()

	blocked, term := f.Check("ești prost rău")
	assert.True(t, blocked)
	assert.Equal(t, "prost", term)
}

func TestCheckLeetspeak(t *testing.T) {
	f := NewFilter()

	blocked, term := f.Check("pr0st")
	assert.True(t, blocked)
	assert.Equal(t, "prost", term)

	blocked, term = f.Check("sh1t")
	assert.True(t, blocked)
	assert.Equal(t, "shit", term)
}

func TestCheckRepeatedCharacters(t *testing.T) {
	f := NewFilter()

	blocked, _ := f.Check("mare idiot")
	assert.True(t, blocked)

	// Elongated runs collapse to doubles, so "buttt" ends at "butt" and
	// stays clean while the bare term is still caught.
	blocked, _ = f.Check("mare bouuu")
	assert.False(t, blocked)
}

func TestCheckDiacritics(t *testing.T) {
	f := NewFilter()

	// "tâmpit" folds to "tampit".
	blocked, term := f.Check("ce tâmpit ești")
	assert.True(t, blocked)
	assert.Equal(t, "tampit", term)
}

func TestCheckSubstringNeedsWordBoundary(t *testing.T) {
	f := NewFilter()

	// "fut" is blacklisted but "viitorul" must not trigger it.
	blocked, _ := f.Check("o carte despre viitorul omenirii")
	assert.False(t, blocked)

	blocked, term := f.Check("carte de bou citită")
	assert.True(t, blocked)
	assert.Equal(t, "bou", term)
}

func TestCustomBlacklist(t *testing.T) {
	f := NewFilterWithBlacklist([]string{"interzis"})

	blocked, term := f.Check("cuvânt interzis aici")
	assert.True(t, blocked)
	assert.Equal(t, "interzis", term)

	blocked, _ = f.Check("ești prost")
	assert.False(t, blocked, "default terms are not active on a custom list")
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "carte frumoasa", normalizeText("Carte   frumoasă???"))
	assert.Equal(t, "cool", normalizeText("cooool"))
	assert.Equal(t, "asta e o carte", normalizeText("a5t4 e o c4rte"))
}
