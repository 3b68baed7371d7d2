package models

import "time"

// NewsArticle is a single crypto news headline pulled from an RSS source.
type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Tone        string    `json:"tone,omitempty"` // "bullish", "bearish", or "" when no signal
}
