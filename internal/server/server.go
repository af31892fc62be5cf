package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"luxestandard/internal/config"
	"luxestandard/internal/usecase"
)

// Server is the HTTP front of the service: public read API, outbound
// redirects, SEO documents, and the secret-gated admin surface.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	reader     *usecase.Reader
	catalog    *usecase.Catalog
	generator  *usecase.Generator
	site       config.SiteConfig
	log        *slog.Logger
}

// New builds the router and the underlying http.Server. Generation requests
// can legitimately take minutes, so there is no per-request timeout
// middleware; the listener's write timeout is the only bound.
func New(cfg config.Config, reader *usecase.Reader, catalog *usecase.Catalog, generator *usecase.Generator, log *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		reader:    reader,
		catalog:   catalog,
		generator: generator,
		site:      cfg.Site,
		log:       log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Admin-Secret"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/articles", s.handleListArticles)
		r.Get("/articles/{slug}", s.handleGetArticle)
		r.Get("/categories", s.handleCategories)
		r.Get("/featured", s.handleFeatured)
		r.Get("/search", s.handleSearch)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/links", s.handleListLinks)
			r.Post("/links", s.handleCreateLink)
			r.Put("/links/{id}", s.handleUpdateLink)
			r.Delete("/links/{id}", s.handleDeleteLink)

			r.Post("/generate", s.handleGenerate)
			r.Post("/generate/batch", s.handleGenerateBatch)

			r.Put("/articles/{id}/publish", s.handlePublish)
			r.Put("/articles/{id}/unpublish", s.handleUnpublish)
			r.Delete("/articles/{id}", s.handleDeleteArticle)

			r.Get("/stats", s.handleStats)
		})
	})

	s.router.Get("/go/{id}", s.handleRedirect)

	s.router.Get("/sitemap.xml", s.handleSitemap)
	s.router.Get("/feed.xml", s.handleFeed)
	s.router.Get("/robots.txt", s.handleRobots)
}

// Start runs the listener until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// Router exposes the chi mux for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
