package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"bookmarker/internal/metrics"
	"bookmarker/internal/models"
	"bookmarker/internal/repositories"
)

type BookmarkService interface {
	GetBookmarks(ctx context.Context) ([]models.Bookmark, error)
	AddBookmark(ctx context.Context, reqBody models.AddBookmarkRequest) (*models.Bookmark, error)
	SummarizeURL(ctx context.Context, url string) (string, error)
	Reset(ctx context.Context) error
}

type bookmarkServiceImpl struct {
	bookmarkRepo repositories.BookmarkRepository
	pipeline     SummarizePipeline
}

func NewBookmarkService(bookmarkRepo repositories.BookmarkRepository, pipeline SummarizePipeline) BookmarkService {
	return &bookmarkServiceImpl{bookmarkRepo: bookmarkRepo, pipeline: pipeline}
}

func (s *bookmarkServiceImpl) GetBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	bookmarks, err := s.bookmarkRepo.List(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Error listing bookmarks")
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(bookmarks)).Msg("Successfully retrieved bookmarks")
	return bookmarks, nil
}

func (s *bookmarkServiceImpl) AddBookmark(ctx context.Context, reqBody models.AddBookmarkRequest) (*models.Bookmark, error) {
	url := reqBody.URL
	target := strings.TrimSpace(url)
	if target == "" {
		zerolog.Ctx(ctx).Warn().Msg("URL is required for adding bookmark")
		return nil, ErrURLRequired
	}

	// the page is fetched at the trimmed address; the bookmark keeps the URL as submitted
	summary, err := s.SummarizeURL(ctx, target)
	if err != nil {
		return nil, err
	}

	bm := models.Bookmark{
		Title:   reqBody.Title,
		URL:     url,
		Summary: summary,
	}

	bookmarks, err := s.bookmarkRepo.Append(ctx, bm)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("url", url).Msg("Error storing bookmark")
		return nil, err
	}

	metrics.BookmarkCreatedTotal.Inc()
	zerolog.Ctx(ctx).Info().Str("url", url).Int("count", len(bookmarks)).Msg("Bookmark added successfully")
	return &bm, nil
}

func (s *bookmarkServiceImpl) SummarizeURL(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrURLRequired
	}

	summary, err := s.pipeline.SummarizePage(ctx, url)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("url", url).Msg("Error generating summary for URL")
		return "", err
	}
	return summary, nil
}

func (s *bookmarkServiceImpl) Reset(ctx context.Context) error {
	if err := s.bookmarkRepo.Reset(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Error resetting bookmarks")
		return err
	}

	metrics.BookmarksResetTotal.Inc()
	zerolog.Ctx(ctx).Info().Msg("Bookmark storage reset")
	return nil
}
