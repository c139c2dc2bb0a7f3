package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookmarker/internal/handlers"
	"bookmarker/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestLogger)
	r.Use(s.metrics.Instrument)
	r.Use(middlewares.NewCorsMiddleware(s.allowedOrigins))
	r.Use(s.limiter.Limit)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerPageRoutes(r)
	s.registerAPIRoutes(r)

	return middlewares.TrimTrailingSlash(r)
}

func (s *Server) registerPageRoutes(r *mux.Router) {
	bh := handlers.NewBookmarksHandler(s.bookmarkService, s.sessions)

	r.HandleFunc("/", bh.Index).Methods("GET")
	r.HandleFunc("/index.html", bh.Index).Methods("GET")
	r.HandleFunc("/add", bh.AddBookmark).Methods("POST", "OPTIONS")
	r.HandleFunc("/reset", bh.Reset)
}

func (s *Server) registerAPIRoutes(r *mux.Router) {
	bh := handlers.NewBookmarksHandler(s.bookmarkService, s.sessions)
	ah := handlers.NewAgentHandler(s.bookmarkService)

	r.HandleFunc("/api/bookmarks", bh.GetBookmarks).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/summarize", ah.SummarizeURL).Methods("POST", "OPTIONS")
}
