package services

import (
	"context"
	"fmt"

	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/core/ports/driving"
	"github.com/libris-ai/libris/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService loads the book catalogue into the semantic index: it reads
// all records, derives their embeddable documents, embeds them in one batch
// and upserts into the vector store. Ingestion is a one-shot, non-concurrent
// batch; re-running it overwrites the same document IDs.
type IngestService struct {
	books    driven.BookStore
	vector   driven.VectorStore
	embedder driven.EmbeddingService
}

// NewIngestService creates the ingestor.
func NewIngestService(
	books driven.BookStore, vector driven.VectorStore, embedder driven.EmbeddingService,
) *IngestService {
	return &IngestService{books: books, vector: vector, embedder: embedder}
}

// Ingest embeds and upserts every catalogued book.
func (s *IngestService) Ingest(ctx context.Context) (int, error) {
	logger.Section("Ingest")
	if s.books == nil {
		return 0, domain.ErrNotFound
	}
	if s.vector == nil {
		return 0, domain.ErrVectorUnavailable
	}
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}

	books, err := s.books.ListBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list books: %w", err)
	}
	if len(books) == 0 {
		return 0, domain.ErrEmptyCatalogue
	}
	logger.Debug("Catalogue: %d books", len(books))

	docs := make([]domain.IndexedDocument, len(books))
	texts := make([]string, len(books))
	for i, b := range books {
		docs[i] = b.IndexedDocument()
		texts[i] = docs[i].Document
	}

	if err := s.vector.EnsureCollection(ctx, s.embedder.Dimensions()); err != nil {
		return 0, fmt.Errorf("ensure collection: %w", err)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("embedding count mismatch: %d vectors for %d documents", len(vectors), len(docs))
	}
	logger.Debug("Embedded %d documents (%d dimensions)", len(vectors), s.embedder.Dimensions())

	if err := s.vector.Upsert(ctx, docs, vectors); err != nil {
		return 0, fmt.Errorf("upsert documents: %w", err)
	}
	logger.Info("Ingested %d documents", len(docs))

	return len(docs), nil
}
