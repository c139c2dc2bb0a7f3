package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bookmarker/internal/database"
	"bookmarker/internal/models"
	"bookmarker/internal/utils"
)

// BookmarksKey is the store key holding the whole JSON-encoded collection.
const BookmarksKey = "bookmarks"

type BookmarkRepository interface {
	List(ctx context.Context) ([]models.Bookmark, error)
	Append(ctx context.Context, bm models.Bookmark) ([]models.Bookmark, error)
	Reset(ctx context.Context) error
}

type bookmarkRepository struct {
	db database.Service
}

func NewBookmarkRepository(db database.Service) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) List(ctx context.Context) (bookmarks []models.Bookmark, err error) {
	done := utils.ObserveStoreQuery("get", "bookmark")
	defer func() { done(err) }()

	return r.list(ctx)
}

func (r *bookmarkRepository) list(ctx context.Context) ([]models.Bookmark, error) {
	raw, err := r.db.Get(ctx, BookmarksKey)
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return []models.Bookmark{}, nil
		}
		return nil, fmt.Errorf("failed to retrieve bookmarks: %w", err)
	}

	bookmarks := []models.Bookmark{}
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		return nil, fmt.Errorf("error decoding bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Append reads the collection, adds bm at the end and writes the whole
// collection back. Concurrent appends race; the last write wins.
func (r *bookmarkRepository) Append(ctx context.Context, bm models.Bookmark) (bookmarks []models.Bookmark, err error) {
	done := utils.ObserveStoreQuery("append", "bookmark")
	defer func() { done(err) }()

	bookmarks, err = r.list(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks = append(bookmarks, bm)

	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return nil, fmt.Errorf("error encoding bookmarks: %w", err)
	}
	if err := r.db.Set(ctx, BookmarksKey, raw); err != nil {
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Reset(ctx context.Context) (err error) {
	done := utils.ObserveStoreQuery("delete", "bookmark")
	defer func() { done(err) }()

	if err := r.db.Delete(ctx, BookmarksKey); err != nil {
		return fmt.Errorf("failed to reset bookmarks: %w", err)
	}
	return nil
}
