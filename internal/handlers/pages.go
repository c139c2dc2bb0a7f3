package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"bookmarker/internal/models"
)

const (
	pageTitle   = "Bookmarker"
	sessionName = "bookmarker"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	Title     string
	Bookmarks []models.Bookmark
	Flashes   []interface{}
}

// renderIndex executes the template into a buffer first so a failing
// template never leaves a half-written page.
func renderIndex(w http.ResponseWriter, r *http.Request, page indexPage) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index.html", page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error rendering index template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// popFlashes returns and clears pending flash messages. The session must be
// saved before anything is written to w.
func popFlashes(store sessions.Store, w http.ResponseWriter, r *http.Request) []interface{} {
	session, err := store.Get(r, sessionName)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Discarding unreadable session")
	}
	flashes := session.Flashes()
	if len(flashes) > 0 {
		if err := session.Save(r, w); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error saving session")
		}
	}
	return flashes
}

func addFlash(store sessions.Store, w http.ResponseWriter, r *http.Request, msg string) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Discarding unreadable session")
	}
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error saving session")
	}
}
