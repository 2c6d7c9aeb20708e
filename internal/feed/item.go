package feed

import "time"

// Item is the canonical article record produced by the parser. Immutable
// after creation; the aggregator owns it for merge, dedup and grouping.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Link           string    `json:"link"`
	PubDate        time.Time `json:"pubDate"`
	Source         string    `json:"source"`
	SourceName     string    `json:"sourceName"`
	SourceFullName string    `json:"sourceFullName"`
	SourceColor    string    `json:"sourceColor"`
	Category       string    `json:"category,omitempty"`
	Topics         []string  `json:"topics"`
	ImageURL       string    `json:"imageUrl,omitempty"`
}
