package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/api/request"
	"portfolio-tracker/internal/api/response"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/internal/session"
	"portfolio-tracker/internal/validation"
	"portfolio-tracker/internal/web"
)

// PortfolioHandler handles HTTP requests for the portfolio endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolio service.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	sessions         *session.Manager
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided dependencies.
func NewPortfolioHandler(portfolioService *service.PortfolioService, sessions *session.Manager) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		sessions:         sessions,
	}
}

// Dashboard handles GET requests for the aggregated dashboard view.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with DashboardView
func (h *PortfolioHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	view, err := h.portfolioService.BuildDashboard(r.Context(), sess)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Flash messages are consumed by the render that shows them.
	if len(sess.Messages) > 0 {
		sess.Messages = nil
		_ = h.sessions.Save(w, sess)
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// Purchase handles POST requests submitting a new purchase.
//
// Endpoint: POST /api/portfolio/purchase
// Response: 201 Created with the committed purchase figures
// Errors: 400 validation, 404 ticker not found, 502 quote fetch failed.
// No lot is appended on any error path.
func (h *PortfolioHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePurchase(req); err != nil {
		respondServiceError(w, err)
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		date = parsed
	}

	result, err := h.portfolioService.Purchase(r.Context(), service.PurchaseRequest{
		Company: req.Company,
		Shares:  req.Shares,
		Price:   decimal.NewFromFloat(req.Price).Round(2),
		Date:    date,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sess := h.sessions.Load(r)
	message := fmt.Sprintf(
		"Added %d shares of %s (%s) at %s per share. Investment: %s, Current Value: %s, P&L: %s (%s%%)",
		result.Shares,
		result.Name,
		result.Ticker,
		web.FormatAmount(result.Price, sess.Currency),
		web.FormatAmount(result.Invested, sess.Currency),
		web.FormatAmount(result.CurrentValue, sess.Currency),
		web.FormatSignedAmount(result.ProfitLoss, sess.Currency),
		result.ProfitPct.StringFixed(2),
	)
	sess.Messages = append(sess.Messages, message)
	_ = h.sessions.Save(w, sess)

	response.RespondJSON(w, http.StatusCreated, map[string]any{
		"status":  "committed",
		"ticker":  result.Ticker,
		"name":    result.Name,
		"message": message,
	})
}

// Remove handles DELETE requests removing a holding and all its lots.
//
// Endpoint: DELETE /api/portfolio/{ticker}
// Response: 200 OK with a confirmation message
// Error: 404 if the ticker is not held
func (h *PortfolioHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if err := validation.ValidateTicker(ticker); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.portfolioService.RemoveHolding(ticker); err != nil {
		respondServiceError(w, err)
		return
	}

	sess := h.sessions.Load(r)
	if sess.Selected == ticker {
		sess.Selected = ""
	}
	sess.Messages = append(sess.Messages, fmt.Sprintf("Removed %s from portfolio", ticker))
	_ = h.sessions.Save(w, sess)

	response.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "removed",
		"ticker": ticker,
	})
}

// News handles GET requests for a holding's news panel.
//
// Endpoint: GET /api/portfolio/{ticker}/news
// Response: 200 OK with NewsPanel; empty lists mean "no recent news"
// Error: 404 if the ticker is not held
func (h *PortfolioHandler) News(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if err := validation.ValidateTicker(ticker); err != nil {
		respondServiceError(w, err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	holding, ok := portfolio[ticker]
	if !ok {
		response.RespondError(w, http.StatusNotFound, "not found", fmt.Sprintf("no holding for %s", ticker))
		return
	}

	panel := h.portfolioService.BuildNewsPanel(r.Context(), ticker, holding.Name)
	response.RespondJSON(w, http.StatusOK, panel)
}
