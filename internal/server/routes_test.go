package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"bookmarker/internal/config"
	"bookmarker/internal/database"
	"bookmarker/internal/models"
	"bookmarker/internal/services"
)

type echoLLM struct {
	prompts []string
}

func (e *echoLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				e.prompts = append(e.prompts, text.Text)
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "summary of the page"}}}, nil
}

func (e *echoLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, e, prompt, options...)
}

func testConfig() config.Config {
	return config.Config{
		Port:           0,
		StoreDriver:    config.StoreMemory,
		MaxRedirects:   services.DefaultMaxRedirects,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		SessionSecret:  "test-secret",
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
	}
}

func newTestServer(t *testing.T) (http.Handler, *echoLLM) {
	t.Helper()
	llm := &echoLLM{}
	pipeline := services.NewSummarizePipeline(
		services.NewPageFetcher(time.Second, services.DefaultMaxRedirects),
		services.NewSummaryGenerator(llm, services.DefaultInferenceParams("llama2-chat")),
	)
	s := New(testConfig(), Deps{
		DB:       database.NewMemory(),
		Pipeline: pipeline,
		Registry: prometheus.NewRegistry(),
	})
	return s.httpServer.Handler, llm
}

func do(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func listBookmarks(t *testing.T, h http.Handler) []models.Bookmark {
	t.Helper()
	rec := do(h, http.MethodGet, "/api/bookmarks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var bookmarks []models.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookmarks))
	return bookmarks
}

func TestAddListAndReset(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			http.Redirect(w, r, "/article", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte("<title>A</title><article>B</article>"))
	}))
	defer page.Close()

	h, llm := newTestServer(t)

	assert.Empty(t, listBookmarks(t, h))

	form := url.Values{"title": {"T"}, "url": {page.URL + "/moved"}}
	rec := do(h, http.MethodPost, "/add", form.Encode())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/index.html", rec.Header().Get("Location"))

	assert.Equal(t, []models.Bookmark{{Title: "T", URL: page.URL + "/moved", Summary: "summary of the page"}}, listBookmarks(t, h))
	assert.Equal(t, []string{services.BuildSummaryPrompt("A\nB")}, llm.prompts)

	index := do(h, http.MethodGet, "/index.html", "")
	require.Equal(t, http.StatusOK, index.Code)
	assert.Contains(t, index.Body.String(), "summary of the page")

	reset := do(h, http.MethodGet, "/reset", "")
	require.Equal(t, http.StatusOK, reset.Code)
	assert.Equal(t, "Storage has been reset", reset.Body.String())

	index = do(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, index.Code)
	assert.Contains(t, index.Body.String(), "No bookmarks yet.")
	assert.Empty(t, listBookmarks(t, h))
}

func TestAddUnreachablePageStoresFallback(t *testing.T) {
	page := httptest.NewServer(http.NotFoundHandler())
	defer page.Close()

	h, llm := newTestServer(t)

	rec := do(h, http.MethodPost, "/add/", url.Values{"title": {"Gone"}, "url": {page.URL}}.Encode())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	bookmarks := listBookmarks(t, h)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, services.FallbackSummary, bookmarks[0].Summary)
	assert.Empty(t, llm.prompts)
}

func TestAddWithoutURL(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, http.MethodPost, "/add", url.Values{"title": {"T"}}.Encode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, listBookmarks(t, h))
}

func TestRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/index.html", http.StatusOK},
		{http.MethodGet, "/index.html/", http.StatusOK},
		{http.MethodPost, "/reset", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/add", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := do(h, tt.method, tt.target, "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
