package driving

import (
	"context"

	"github.com/libris-ai/libris/internal/core/domain"
)

// Recommender runs the full query pipeline:
// content filter, retrieval, answer composition and reranking.
type Recommender interface {
	// Retrieve returns the ordered candidate list for a query without
	// composing an answer.
	Retrieve(ctx context.Context, q domain.Query) ([]domain.Candidate, error)

	// Ask runs filter -> retrieve -> compose -> rerank and returns the
	// answer with its reordered candidates.
	Ask(ctx context.Context, q domain.Query) (*domain.Answer, error)
}
