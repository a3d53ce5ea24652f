package news_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-tracker/internal/news"
)

func rssBody(itemCount int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel>`)
	for i := 1; i <= itemCount; i++ {
		fmt.Fprintf(&b, `<item>
			<title>Headline %d</title>
			<link>https://example.com/article-%d</link>
			<description>Summary %d</description>
			<pubDate>Mon, 15 Jan 2024 09:00:00 GMT</pubDate>
		</item>`, i, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)
	return server
}

// TestFetcher_Fetch tests headline retrieval and its bounds.
//
// WHY: News is decorative: its failure must degrade to an empty list, and
// its volume must stay bounded so the overflow split stays meaningful.
func TestFetcher_Fetch(t *testing.T) {
	t.Run("parses items from the feed", func(t *testing.T) {
		server := feedServer(t, rssBody(2))
		fetcher := news.NewFetcherWithSources(time.Second, news.Source{Name: "Test Feed", URL: server.URL + "?q=%s"})

		items := fetcher.Fetch(context.Background(), "Apple")

		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].Title != "Headline 1" {
			t.Errorf("Expected first headline, got %q", items[0].Title)
		}
		if items[0].Source != "Test Feed" {
			t.Errorf("Expected source label, got %q", items[0].Source)
		}
		if items[0].Summary != "Summary 1" {
			t.Errorf("Expected cleaned summary, got %q", items[0].Summary)
		}
	})

	t.Run("caps the total at six items", func(t *testing.T) {
		server := feedServer(t, rssBody(15))
		fetcher := news.NewFetcherWithSources(time.Second, news.Source{Name: "Test Feed", URL: server.URL + "?q=%s"})

		items := fetcher.Fetch(context.Background(), "Apple")

		if len(items) != 6 {
			t.Errorf("Expected 6 items, got %d", len(items))
		}
	})

	t.Run("feed failure yields an empty slice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(server.Close)

		fetcher := news.NewFetcherWithSources(time.Second, news.Source{Name: "Broken Feed", URL: server.URL + "?q=%s"})

		items := fetcher.Fetch(context.Background(), "Apple")

		if len(items) != 0 {
			t.Errorf("Expected empty result on feed failure, got %d items", len(items))
		}
	})

	t.Run("second source fills in after a failure", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(broken.Close)
		working := feedServer(t, rssBody(1))

		fetcher := news.NewFetcherWithSources(time.Second,
			news.Source{Name: "Broken", URL: broken.URL + "?q=%s"},
			news.Source{Name: "Working", URL: working.URL + "?q=%s"},
		)

		items := fetcher.Fetch(context.Background(), "Apple")

		if len(items) != 1 {
			t.Fatalf("Expected 1 item from the fallback source, got %d", len(items))
		}
		if items[0].Source != "Working" {
			t.Errorf("Expected fallback source label, got %q", items[0].Source)
		}
	})

	t.Run("markup is stripped and long summaries truncated", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		body := fmt.Sprintf(`<?xml version="1.0"?><rss version="2.0"><channel>
			<item>
				<title>Tagged</title>
				<link>https://example.com/a</link>
				<description>&lt;a href="https://t.example"&gt;%s&lt;/a&gt;</description>
			</item>
			<item>
				<title>Blank</title>
				<link>https://example.com/b</link>
				<description></description>
			</item>
		</channel></rss>`, long)
		server := feedServer(t, body)
		fetcher := news.NewFetcherWithSources(time.Second, news.Source{Name: "Test Feed", URL: server.URL + "?q=%s"})

		items := fetcher.Fetch(context.Background(), "Apple")

		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if strings.Contains(items[0].Summary, "<a") {
			t.Errorf("Expected markup stripped, got %q", items[0].Summary)
		}
		if len([]rune(items[0].Summary)) != 203 {
			t.Errorf("Expected 200 runes plus ellipsis, got %d", len([]rune(items[0].Summary)))
		}
		if items[1].Summary != "No summary available." {
			t.Errorf("Expected fallback summary, got %q", items[1].Summary)
		}
	})

	t.Run("entries without title or link are skipped", func(t *testing.T) {
		body := `<?xml version="1.0"?><rss version="2.0"><channel>
			<item><title></title><link>https://example.com/a</link></item>
			<item><title>No Link</title><link></link></item>
			<item><title>Good</title><link>https://example.com/b</link></item>
		</channel></rss>`
		server := feedServer(t, body)
		fetcher := news.NewFetcherWithSources(time.Second, news.Source{Name: "Test Feed", URL: server.URL + "?q=%s"})

		items := fetcher.Fetch(context.Background(), "Apple")

		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(items))
		}
		if items[0].Title != "Good" {
			t.Errorf("Expected the complete entry, got %q", items[0].Title)
		}
	})
}
