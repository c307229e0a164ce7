package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-ai/libris/internal/core/domain"
)

func testDoc(id, title string) domain.IndexedDocument {
	return domain.IndexedDocument{
		ID:       id,
		Document: "Titlu: " + title + "\nRezumat: ceva",
		Metadata: map[string]string{domain.MetaTitle: title},
	}
}

func TestUpsertAndCount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, 3))
	require.NoError(t, s.Upsert(ctx,
		[]domain.IndexedDocument{testDoc("a", "A"), testDoc("b", "B")},
		[][]float32{{1, 0, 0}, {0, 1, 0}},
	))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpsertIsIdempotentByID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, 2))
	require.NoError(t, s.Upsert(ctx, []domain.IndexedDocument{testDoc("a", "First")}, [][]float32{{1, 0}}))
	require.NoError(t, s.Upsert(ctx, []domain.IndexedDocument{testDoc("a", "Second")}, [][]float32{{0, 1}}))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	docs, err := s.Scroll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Second", docs[0].Metadata[domain.MetaTitle])
}

func TestQueryOrdersByDistance(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, 2))
	require.NoError(t, s.Upsert(ctx,
		[]domain.IndexedDocument{testDoc("x", "X"), testDoc("y", "Y"), testDoc("z", "Z")},
		[][]float32{{1, 0}, {0, 1}, {0.9, 0.1}},
	))

	hits, err := s.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "x", hits[0].Document.ID)
	assert.Equal(t, "z", hits[1].Document.ID)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-9)
	assert.Less(t, hits[0].Distance, hits[1].Distance)
}

func TestQueryEmptyStore(t *testing.T) {
	s := NewStore()
	hits, err := s.Query(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.EnsureCollection(ctx, 3))

	err := s.Upsert(ctx, []domain.IndexedDocument{testDoc("a", "A")}, [][]float32{{1, 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScrollPreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.EnsureCollection(ctx, 1))
	require.NoError(t, s.Upsert(ctx,
		[]domain.IndexedDocument{testDoc("c", "C"), testDoc("a", "A"), testDoc("b", "B")},
		[][]float32{{1}, {1}, {1}},
	))

	docs, err := s.Scroll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
}
