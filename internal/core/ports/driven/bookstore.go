package driven

import (
	"context"

	"github.com/libris-ai/libris/internal/core/domain"
)

// BookStore persists the canonical book records.
// Backed by SQLite; populated once by seeding, read by the ingestor.
type BookStore interface {
	// UpsertBooks inserts or updates records keyed by their unique title.
	UpsertBooks(ctx context.Context, books []domain.Book) error

	// ListBooks returns all records ordered by row id.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
