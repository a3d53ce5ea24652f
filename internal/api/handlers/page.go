package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/internal/session"
	"portfolio-tracker/internal/web"
)

// PageHandler serves the rendered HTML dashboard.
type PageHandler struct {
	portfolioService *service.PortfolioService
	sessions         *session.Manager
	renderer         *web.Renderer
}

// NewPageHandler creates a new PageHandler with the provided dependencies.
func NewPageHandler(portfolioService *service.PortfolioService, sessions *session.Manager, renderer *web.Renderer) *PageHandler {
	return &PageHandler{
		portfolioService: portfolioService,
		sessions:         sessions,
		renderer:         renderer,
	}
}

// Dashboard handles GET requests for the HTML dashboard page.
//
// Endpoint: GET /
// Response: 200 OK with the rendered page
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	view, err := h.portfolioService.BuildDashboard(r.Context(), sess)
	if err != nil {
		logger.L().Error("failed to build dashboard", zap.Error(err))
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}

	// Flash messages are consumed by the render that shows them.
	if len(sess.Messages) > 0 {
		sess.Messages = nil
		_ = h.sessions.Save(w, sess)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, view); err != nil {
		logger.L().Error("failed to render dashboard", zap.Error(err))
	}
}
