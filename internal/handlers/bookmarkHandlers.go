package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"bookmarker/internal/models"
	"bookmarker/internal/services"
	"bookmarker/internal/utils"
)

type BookmarkHandler struct {
	service  services.BookmarkService
	sessions sessions.Store
}

func NewBookmarksHandler(service services.BookmarkService, store sessions.Store) *BookmarkHandler {
	return &BookmarkHandler{service: service, sessions: store}
}

// statusForError maps service errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrURLRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrFetchFailed),
		errors.Is(err, services.ErrInvalidEncoding),
		errors.Is(err, services.ErrInference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookmarkHandler) Index(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.service.GetBookmarks(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error getting bookmarks from service")
		http.Error(w, "Failed to load bookmarks", http.StatusInternalServerError)
		return
	}

	renderIndex(w, r, indexPage{
		Title:     pageTitle,
		Bookmarks: bookmarks,
		Flashes:   popFlashes(h.sessions, w, r),
	})
}

func (h *BookmarkHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error decoding form for AddBookmark")
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	reqBody := models.AddBookmarkRequest{
		Title: r.PostForm.Get("title"),
		URL:   r.PostForm.Get("url"),
	}
	zerolog.Ctx(r.Context()).Debug().Interface("request_body", reqBody).Msg("Received bookmark request")

	bm, err := h.service.AddBookmark(r.Context(), reqBody)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error adding bookmark via service")
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	addFlash(h.sessions, w, r, "Saved "+bm.URL)
	w.Header().Set("Location", "/index.html")
	w.WriteHeader(http.StatusSeeOther)
}

func (h *BookmarkHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error resetting bookmarks via service")
		http.Error(w, "Failed to reset storage", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Storage has been reset"))
}

func (h *BookmarkHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.service.GetBookmarks(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error getting bookmarks from service")
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bookmarks)
}
