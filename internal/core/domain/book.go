package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/libris-ai/libris/internal/textnorm"
)

// Book is a canonical record in the book catalogue.
// Books are immutable once stored; Title is the identity key and must be
// unique within the record store.
type Book struct {
	// ID is the record store row identifier (0 before first save).
	ID int64

	// Title is the unique, non-empty book title.
	Title string

	// Author is the author name (optional).
	Author string

	// Year is the publication year (optional, 0 if unknown).
	Year int

	// Language is the summary language code (default "ro").
	Language string

	// Summary is a short, multi-line spoiler-free synopsis (required).
	Summary string

	// Themes is a comma-separated tag list, e.g. "prietenie, aventură".
	Themes string
}

// Validate checks the invariants enforced at write time.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(b.Summary) == "" {
		return fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}
	return nil
}

// ThemeList splits the comma-separated themes into trimmed, non-empty tags.
func (b Book) ThemeList() []string {
	parts := strings.Split(b.Themes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IndexedDocument is the embeddable form of a Book, derived for ingestion
// into the semantic index. Its ID is deterministic given (title, author), so
// repeated ingestion of the same record upserts rather than duplicates.
type IndexedDocument struct {
	// ID is a stable slug of title+author.
	ID string

	// Document is the labelled text that gets embedded.
	Document string

	// Metadata holds the structured fields stored alongside the vector.
	Metadata map[string]string
}

// Payload metadata keys shared by the vector store adapters.
const (
	MetaTitle    = "title"
	MetaAuthor   = "author"
	MetaYear     = "year"
	MetaLanguage = "language"
	MetaThemes   = "themes"
)

// IndexedDocument derives the embeddable document for this book.
// The labelled concatenation includes summary and themes to help recall.
func (b Book) IndexedDocument() IndexedDocument {
	language := b.Language
	if language == "" {
		language = "ro"
	}
	doc := fmt.Sprintf("Titlu: %s\nAutor: %s\nAn: %d\nLimbă: %s\nTeme: %s\nRezumat: %s",
		b.Title, b.Author, b.Year, language, b.Themes, b.Summary)
	return IndexedDocument{
		ID:       textnorm.Slug(b.Title + "-" + b.Author),
		Document: doc,
		Metadata: map[string]string{
			MetaTitle:    b.Title,
			MetaAuthor:   b.Author,
			MetaYear:     strconv.Itoa(b.Year),
			MetaLanguage: language,
			MetaThemes:   strings.Join(b.ThemeList(), ", "),
		},
	}
}
