package model

// NewsItem is one headline fetched for a company. Ephemeral; re-fetched
// per render and bounded to a small count by the fetcher.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
	Source    string `json:"source"`
}
