package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Hobbitul", "hobbitul"},
		{"romanian diacritics", "Stăpânul Inelelor: Frăția Inelului", "stapanul inelelor fratia inelului"},
		{"punctuation collapsed", "1984  --  George_Orwell!!", "1984 george orwell"},
		{"mixed case and accents", "Mândrie și Prejudecată", "mandrie si prejudecata"},
		{"empty", "", ""},
		{"only punctuation", "?!...---", ""},
		{"leading and trailing noise", "  (Dune)  ", "dune"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	in := "Să ucizi o pasăre cântătoare"
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"title and author", "Hobbitul-J.R.R. Tolkien", "hobbitul-jrr-tolkien"},
		{"diacritics folded", "Vânătorii de zmeie-Khaled Hosseini", "vanatorii-de-zmeie-khaled-hosseini"},
		{"collapse runs", "a  -  b", "a-b"},
		{"empty input falls back", "", "id"},
		{"non-ascii only falls back", "«»„”", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.input))
		})
	}
}

func TestSlugDeterministic(t *testing.T) {
	a := Slug("Dune-Frank Herbert")
	b := Slug("Dune-Frank Herbert")
	assert.Equal(t, a, b)
}
