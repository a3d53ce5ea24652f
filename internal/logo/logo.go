// Package logo resolves company display names to logo image URLs by
// probing a small ordered list of image-hosting templates.
package logo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio-tracker/internal/logger"
)

// PlaceholderURL is returned when no hosting template responds.
const PlaceholderURL = "https://via.placeholder.com/100x100/1a1a1a/FFFFFF?text=%F0%9F%93%88"

var defaultTemplates = []string{
	"https://logo.clearbit.com/%s.com",
	"https://img.logo.dev/%s.com",
}

// Resolver probes logo-hosting URL templates for a company name.
// Resolution never fails the caller: on total probe failure the fixed
// placeholder URL is returned.
type Resolver struct {
	httpClient  *http.Client
	templates   []string
	placeholder string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTemplates overrides the hosting templates, in probe order. Each
// template takes one %s verb: the normalized company name.
func WithTemplates(templates ...string) Option {
	return func(r *Resolver) { r.templates = templates }
}

// WithPlaceholder overrides the fallback URL.
func WithPlaceholder(url string) Option {
	return func(r *Resolver) { r.placeholder = url }
}

// NewResolver creates a resolver with the given probe timeout.
func NewResolver(timeout time.Duration, opts ...Option) *Resolver {
	r := &Resolver{
		httpClient:  &http.Client{Timeout: timeout},
		templates:   defaultTemplates,
		placeholder: PlaceholderURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first candidate URL that answers the existence probe
// with a success status, or the placeholder when none do.
func (r *Resolver) Resolve(ctx context.Context, companyName string) string {
	slug := normalize(companyName)
	if slug == "" {
		return r.placeholder
	}

	for _, template := range r.templates {
		url := fmt.Sprintf(template, slug)
		if r.probe(ctx, url) {
			return url
		}
	}
	return r.placeholder
}

// probe issues a lightweight existence check. Transport errors count as a
// failed probe, never as an error to the caller.
func (r *Resolver) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		logger.L().Debug("logo probe failed", zap.String("url", url), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// normalize lower-cases the name and strips spaces, the same naming
// heuristic the hosting templates expect ("Apple Inc" -> "appleinc").
func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}
