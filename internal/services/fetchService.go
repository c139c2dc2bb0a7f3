package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"bookmarker/internal/metrics"
)

// FallbackSummary replaces the page text when a page cannot be loaded.
// It is stored as a regular summary.
const FallbackSummary = "Unable to load preview"

const DefaultMaxRedirects = 10

type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

type pageFetcher struct {
	client       *http.Client
	maxRedirects int
}

// NewPageFetcher returns a fetcher that follows redirects itself, up to
// maxRedirects hops. A zero timeout means no client-side timeout.
func NewPageFetcher(timeout time.Duration, maxRedirects int) PageFetcher {
	return newPageFetcher(&http.Client{Timeout: timeout}, maxRedirects)
}

func newPageFetcher(client *http.Client, maxRedirects int) *pageFetcher {
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &pageFetcher{client: &c, maxRedirects: maxRedirects}
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusSeeOther, http.StatusNotModified, http.StatusTemporaryRedirect:
		return true
	}
	return false
}

// Fetch returns the body of the page at rawURL. Redirects are followed
// through their Location header. Any terminal status other than 200, a
// redirect loop, or too many hops yields FallbackSummary with a nil error.
func (f *pageFetcher) Fetch(ctx context.Context, rawURL string) (body string, err error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case err != nil:
			outcome = "error"
		case body == FallbackSummary:
			outcome = "fallback"
		}
		metrics.FetchDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	visited := make(map[string]struct{})
	target := rawURL

	for hops := 0; ; hops++ {
		if _, seen := visited[target]; seen {
			logger.Warn().Str("url", target).Msg("Redirect loop detected")
			return FallbackSummary, nil
		}
		visited[target] = struct{}{}

		logger.Debug().Str("url", target).Msg("Fetching page")
		resp, err := f.get(ctx, target)
		if err != nil {
			return "", err
		}

		switch {
		case isRedirect(resp.StatusCode):
			resp.Body.Close()
			loc := resp.Header.Get("Location")
			if loc == "" {
				logger.Warn().Str("url", target).Int("status", resp.StatusCode).Msg("Redirect without location")
				return FallbackSummary, nil
			}
			if hops >= f.maxRedirects {
				logger.Warn().Str("url", rawURL).Int("max_redirects", f.maxRedirects).Msg("Too many redirects")
				return FallbackSummary, nil
			}
			next, err := resolveLocation(resp.Request.URL, loc)
			if err != nil {
				logger.Warn().Err(err).Str("location", loc).Msg("Invalid redirect location")
				return FallbackSummary, nil
			}
			logger.Info().Str("from", target).Str("to", next).Msg("Following redirect")
			metrics.RedirectsFollowedTotal.Inc()
			target = next

		case resp.StatusCode == http.StatusOK:
			return readBody(resp)

		default:
			resp.Body.Close()
			logger.Info().Str("url", target).Int("status", resp.StatusCode).Msg("Page could not be loaded")
			return FallbackSummary, nil
		}
	}
}

func (f *pageFetcher) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrFetchFailed, target, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return resp, nil
}

func readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, resp.Request.URL)
	}
	return string(raw), nil
}

func resolveLocation(base *url.URL, loc string) (string, error) {
	ref, err := url.Parse(loc)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
