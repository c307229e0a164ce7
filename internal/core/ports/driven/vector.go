package driven

import (
	"context"

	"github.com/libris-ai/libris/internal/core/domain"
)

// VectorStore is the semantic index: a vector collection keyed by the stable
// document slug, holding an embedding, the document text and structured
// metadata per book. It must support nearest-neighbour queries and a full
// metadata scan for the structural title modes.
type VectorStore interface {
	// EnsureCollection creates the collection if it does not exist.
	// dimensions must match the embedding provider.
	EnsureCollection(ctx context.Context, dimensions int) error

	// Upsert writes documents and their vectors. Re-ingesting the same
	// document ID overwrites the prior content (idempotent ingestion).
	Upsert(ctx context.Context, docs []domain.IndexedDocument, vectors [][]float32) error

	// Query returns the k nearest documents to the query vector.
	Query(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Scroll returns every stored document with its metadata (no vectors).
	Scroll(ctx context.Context) ([]StoredDocument, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// StoredDocument is a document read back from the semantic index.
type StoredDocument struct {
	// ID is the document slug.
	ID string

	// Document is the embedded text blob.
	Document string

	// Metadata holds the structured fields (title, author, year, ...).
	Metadata map[string]string
}

// VectorHit is a nearest-neighbour result.
type VectorHit struct {
	// Document is the matched stored document.
	Document StoredDocument

	// Distance is the vector distance; 0 means identical,
	// similarity = 1 - distance.
	Distance float64
}
