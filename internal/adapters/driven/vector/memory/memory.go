// Package memory provides an in-memory vector store using brute-force
// cosine similarity. It is used by tests and as an offline backend when no
// Qdrant instance is configured.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store keeps documents and vectors in memory, guarded by a mutex.
type Store struct {
	mu         sync.RWMutex
	dimensions int
	order      []string
	docs       map[string]driven.StoredDocument
	vectors    map[string][]float32
}

// NewStore creates an empty in-memory vector store.
func NewStore() *Store {
	return &Store{
		docs:    make(map[string]driven.StoredDocument),
		vectors: make(map[string][]float32),
	}
}

// EnsureCollection records the expected vector dimensionality.
func (s *Store) EnsureCollection(_ context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("%w: invalid dimensions %d", domain.ErrInvalidInput, dimensions)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimensions != 0 && s.dimensions != dimensions {
		return fmt.Errorf("%w: collection has %d dimensions, requested %d",
			domain.ErrInvalidInput, s.dimensions, dimensions)
	}
	s.dimensions = dimensions
	return nil
}

// Upsert writes documents and vectors, replacing existing IDs in place so
// re-ingestion stays idempotent.
func (s *Store) Upsert(_ context.Context, docs []domain.IndexedDocument, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("%w: %d documents but %d vectors", domain.ErrInvalidInput, len(docs), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range docs {
		if s.dimensions != 0 && len(vectors[i]) != s.dimensions {
			return fmt.Errorf("%w: vector for %q has %d dimensions, collection has %d",
				domain.ErrInvalidInput, d.ID, len(vectors[i]), s.dimensions)
		}
		if _, exists := s.docs[d.ID]; !exists {
			s.order = append(s.order, d.ID)
		}
		s.docs[d.ID] = driven.StoredDocument{ID: d.ID, Document: d.Document, Metadata: d.Metadata}
		s.vectors[d.ID] = vectors[i]
	}
	return nil
}

// Query ranks all stored documents by cosine distance to the query vector.
func (s *Store) Query(_ context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	hits := make([]driven.VectorHit, 0, len(s.order))
	for _, id := range s.order {
		hits = append(hits, driven.VectorHit{
			Document: s.docs[id],
			Distance: 1 - cosine(vector, s.vectors[id]),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Scroll returns every stored document in insertion order.
func (s *Store) Scroll(_ context.Context) ([]driven.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]driven.StoredDocument, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosine returns the cosine similarity of a and b, 0 for degenerate input.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
