package search

import (
	"strings"
	"time"
)

// Result is one document returned by a search provider.
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content,omitempty"`
	RawContent    string  `json:"raw_content,omitempty"`
	PublishedDate string  `json:"published_date,omitempty"`
	Score         float64 `json:"score,omitempty"`
}

// Valid reports whether the result carries any text to ground an answer on.
func (r Result) Valid() bool {
	return strings.TrimSpace(r.Content) != "" || strings.TrimSpace(r.RawContent) != ""
}

// Body returns the preferred text of the result: raw content when present,
// otherwise the provider snippet.
func (r Result) Body() string {
	if strings.TrimSpace(r.RawContent) != "" {
		return strings.TrimSpace(r.RawContent)
	}
	return strings.TrimSpace(r.Content)
}

type Response struct {
	Query        string        `json:"query"`
	Results      []Result      `json:"results"`
	ResponseTime float64       `json:"response_time"`
	Engine       string        `json:"engine"`
	Duration     time.Duration `json:"duration"`
}
