// Package web renders the server-side dashboard page from the render model.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the dashboard template against a DashboardView.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the dashboard page for the given view.
func (r *Renderer) Render(w io.Writer, view model.DashboardView) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard.html", pageData{view})
}

// pageData wraps the view with currency-aware formatting helpers the
// template calls.
type pageData struct {
	model.DashboardView
}

// Amount formats a monetary value with the session currency.
func (p pageData) Amount(value float64) string {
	return FormatAmount(decimal.NewFromFloat(value), p.Currency)
}

// Signed formats a P&L value with an explicit sign and the session currency.
func (p pageData) Signed(value float64) string {
	return FormatSignedAmount(decimal.NewFromFloat(value), p.Currency)
}

// Pct formats a percentage with an explicit sign and two decimals.
func (p pageData) Pct(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}
