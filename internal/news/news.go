// Package news fetches recent headlines for a company from RSS search feeds.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/model"
)

const (
	// maxPerSource caps how many entries are parsed from one feed.
	maxPerSource = 10
	// maxTotal caps how many items are returned across all sources.
	maxTotal = 6
	// summaryLimit bounds summary length in runes.
	summaryLimit = 200
)

// Source is one RSS search feed. The URL template takes the escaped query.
type Source struct {
	Name string
	URL  string // %s is the URL-escaped search query
}

var defaultSources = []Source{
	{
		Name: "Google News",
		URL:  "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
	},
}

// rssResponse maps the subset of an RSS document the fetcher reads.
type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Fetcher retrieves bounded headline lists from the configured sources.
type Fetcher struct {
	httpClient *http.Client
	sources    []Source
}

// NewFetcher creates a fetcher with the given timeout and the default
// source list.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		sources:    defaultSources,
	}
}

// NewFetcherWithSources creates a fetcher querying the given sources in order.
func NewFetcherWithSources(timeout time.Duration, sources ...Source) *Fetcher {
	f := NewFetcher(timeout)
	f.sources = sources
	return f
}

// Fetch returns up to six news items for the company across all sources.
//
// Per-source failures are logged and skipped; when every source fails the
// result is an empty slice, not an error. Callers render an empty slice as
// "no recent news".
func (f *Fetcher) Fetch(ctx context.Context, companyName string) []model.NewsItem {
	query := url.QueryEscape(companyName + " stock")

	var items []model.NewsItem
	for _, source := range f.sources {
		fetched, err := f.fetchSource(ctx, source, query)
		if err != nil {
			logger.L().Warn("news source failed",
				zap.String("source", source.Name),
				zap.String("company", companyName),
				zap.Error(err),
			)
			continue
		}
		items = append(items, fetched...)
		if len(items) >= maxTotal {
			break
		}
	}

	if len(items) > maxTotal {
		items = items[:maxTotal]
	}
	return items
}

// fetchSource queries a single feed and parses up to maxPerSource entries.
func (f *Fetcher) fetchSource(ctx context.Context, source Source, query string) ([]model.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(source.URL, query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	entries := rss.Channel.Items
	if len(entries) > maxPerSource {
		entries = entries[:maxPerSource]
	}

	items := make([]model.NewsItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Title == "" || entry.Link == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Title:     strings.TrimSpace(entry.Title),
			Link:      strings.TrimSpace(entry.Link),
			Summary:   cleanSummary(entry.Description),
			Published: entry.PubDate,
			Source:    source.Name,
		})
	}
	return items, nil
}

// cleanSummary strips markup from a feed description and truncates it.
// Feed descriptions frequently embed anchor tags and tracking markup.
func cleanSummary(description string) string {
	if strings.TrimSpace(description) == "" {
		return "No summary available."
	}

	text := description
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(description)); err == nil {
		text = doc.Text()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "No summary available."
	}

	runes := []rune(text)
	if len(runes) > summaryLimit {
		return string(runes[:summaryLimit]) + "..."
	}
	return text
}
