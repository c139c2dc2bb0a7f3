package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"bookmarker/internal/config"
	"bookmarker/internal/database"
	"bookmarker/internal/middlewares"
	"bookmarker/internal/repositories"
	"bookmarker/internal/services"
)

type Server struct {
	port            int
	httpServer      *http.Server
	db              database.Service
	bookmarkService services.BookmarkService
	sessions        sessions.Store
	limiter         *middlewares.RateLimiter
	allowedOrigins  []string
	metrics         *middlewares.PrometheusMiddleware
}

// Deps are the external collaborators a Server is built from.
type Deps struct {
	DB       database.Service
	Pipeline services.SummarizePipeline
	Registry prometheus.Registerer
}

// New wires a Server from already constructed collaborators.
func New(cfg config.Config, deps Deps) *Server {
	bookmarkRepo := repositories.NewBookmarkRepository(deps.DB)

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	s := &Server{
		port:            cfg.Port,
		db:              deps.DB,
		bookmarkService: services.NewBookmarkService(bookmarkRepo, deps.Pipeline),
		sessions:        store,
		limiter:         middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		allowedOrigins:  cfg.AllowedOrigins,
		metrics:         middlewares.NewPrometheusMiddleware(deps.Registry),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// NewServer connects the configured store and language model and builds the Server.
func NewServer(ctx context.Context, cfg config.Config) (*Server, error) {
	var db database.Service
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory store; bookmarks are lost on restart")
		db = database.NewMemory()
	default:
		var err error
		db, err = database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
	}

	llm, err := services.NewLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline := services.NewSummarizePipeline(
		services.NewPageFetcher(cfg.FetchTimeout, cfg.MaxRedirects),
		services.NewSummaryGenerator(llm, services.DefaultInferenceParams(cfg.LLMModel)),
	)

	return New(cfg, Deps{DB: db, Pipeline: pipeline, Registry: prometheus.DefaultRegisterer}), nil
}

// Start serves until the server is shut down.
func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

// GracefulShutdown waits for SIGINT/SIGTERM, drains the server and closes the store.
func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go s.limiter.CleanupVisitors(ctx, time.Minute, 3*time.Minute)

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	if err := s.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Error closing store")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
