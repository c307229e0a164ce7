package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-ai/libris/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertAndListBooks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	books := []domain.Book{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965, Summary: "Arrakis.", Themes: "politică"},
		{Title: "1984", Author: "George Orwell", Year: 1949, Summary: "Big Brother.", Themes: "totalitarism"},
	}
	require.NoError(t, store.UpsertBooks(ctx, books))

	got, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Insertion order is preserved through row ids.
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "1984", got[1].Title)
	assert.NotZero(t, got[0].ID)
	assert.Equal(t, "ro", got[0].Language, "language defaults to ro")
}

func TestUpsertBooksUpdatesByTitle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBooks(ctx, []domain.Book{
		{Title: "Dune", Author: "F. Herbert", Year: 1965, Summary: "Prima versiune."},
	}))
	require.NoError(t, store.UpsertBooks(ctx, []domain.Book{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965, Summary: "Versiune actualizată.", Themes: "politică"},
	}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Frank Herbert", got[0].Author)
	assert.Equal(t, "Versiune actualizată.", got[0].Summary)
}

func TestUpsertBooksValidates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpsertBooks(ctx, []domain.Book{{Title: "", Summary: "ceva"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.UpsertBooks(ctx, []domain.Book{{Title: "Fără rezumat"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// A failed batch leaves nothing behind.
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 20)

	byTitle := make(map[string]domain.Book, len(books))
	for _, b := range books {
		byTitle[b.Title] = b
	}
	hobbit, ok := byTitle["Hobbitul"]
	require.True(t, ok)
	assert.Equal(t, "J.R.R. Tolkien", hobbit.Author)
	assert.Equal(t, 1937, hobbit.Year)
	assert.Contains(t, hobbit.Summary, "Bilbo Baggins")
	assert.Contains(t, hobbit.ThemeList(), "aventură")
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Seed(ctx)
	require.NoError(t, err)
	_, err = store.Seed(ctx)
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	_, err = store.Seed(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}
