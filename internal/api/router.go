package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"portfolio-tracker/internal/api/handlers"
	custommiddleware "portfolio-tracker/internal/api/middleware"
	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/internal/session"
	"portfolio-tracker/internal/web"
)

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, portfolioService *service.PortfolioService, sessions *session.Manager, renderer *web.Renderer, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Rendered dashboard page
	pageHandler := handlers.NewPageHandler(portfolioService, sessions, renderer)
	r.Get("/", pageHandler.Dashboard)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		portfolioHandler := handlers.NewPortfolioHandler(portfolioService, sessions)
		r.Get("/dashboard", portfolioHandler.Dashboard)

		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/purchase", portfolioHandler.Purchase)
			r.Delete("/{ticker}", portfolioHandler.Remove)
			r.Get("/{ticker}/news", portfolioHandler.News)
		})

		r.Route("/session", func(r chi.Router) {
			sessionHandler := handlers.NewSessionHandler(sessions)
			r.Post("/currency", sessionHandler.SetCurrency)
			r.Post("/select", sessionHandler.Select)
		})
	})

	return r
}
