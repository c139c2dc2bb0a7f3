package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarker/internal/database"
	"bookmarker/internal/models"
)

type failingStore struct {
	database.Service
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }

func TestBookmarkRepository(t *testing.T) {
	ctx := context.Background()
	db := database.NewMemory()
	repo := NewBookmarkRepository(db)

	t.Run("empty store lists nothing", func(t *testing.T) {
		bookmarks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, bookmarks)
		assert.Empty(t, bookmarks)
	})

	t.Run("append keeps insertion order", func(t *testing.T) {
		_, err := repo.Append(ctx, models.Bookmark{Title: "A", URL: "https://a.test", Summary: "first"})
		require.NoError(t, err)
		all, err := repo.Append(ctx, models.Bookmark{Title: "B", URL: "https://b.test", Summary: "second"})
		require.NoError(t, err)
		require.Len(t, all, 2)

		listed, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, all, listed)
		assert.Equal(t, "A", listed[0].Title)
		assert.Equal(t, "B", listed[1].Title)
	})

	t.Run("collection is stored as one JSON value", func(t *testing.T) {
		raw, err := db.Get(ctx, BookmarksKey)
		require.NoError(t, err)
		assert.JSONEq(t,
			`[{"title":"A","url":"https://a.test","summary":"first"},{"title":"B","url":"https://b.test","summary":"second"}]`,
			string(raw))
	})

	t.Run("reset clears the collection", func(t *testing.T) {
		require.NoError(t, repo.Reset(ctx))
		bookmarks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, bookmarks)

		_, err = db.Get(ctx, BookmarksKey)
		assert.ErrorIs(t, err, database.ErrKeyNotFound)
	})
}

func TestBookmarkRepositoryReadsExistingCollection(t *testing.T) {
	ctx := context.Background()
	db := database.NewMemory()
	require.NoError(t, db.Set(ctx, BookmarksKey, []byte(`[{"title":"T","url":"U","summary":"Unable to load preview"}]`)))

	bookmarks, err := NewBookmarkRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Bookmark{{Title: "T", URL: "U", Summary: "Unable to load preview"}}, bookmarks)
}

func TestBookmarkRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt collection", func(t *testing.T) {
		db := database.NewMemory()
		require.NoError(t, db.Set(ctx, BookmarksKey, []byte(`{not json`)))

		_, err := NewBookmarkRepository(db).List(ctx)
		assert.Error(t, err)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		repo := NewBookmarkRepository(failingStore{Service: database.NewMemory(), err: boom})

		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, boom)

		_, err = repo.Append(ctx, models.Bookmark{URL: "u"})
		assert.ErrorIs(t, err, boom)
	})
}
