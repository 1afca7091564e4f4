// FILE: internal/entity/feed_entity.go
package entity

import "time"

// Article is one news item as served by the backend. Summary is filled in
// by the feed pipeline's enrichment stage; articles only live inside the
// process-lifetime feed cache, never in durable storage.
type Article struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Url         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Category    string `json:"category,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// FeedPage is one merged, enriched page of the feed. FetchedAt stamps when
// the page was assembled and drives staleness checks.
type FeedPage struct {
	Articles   []Article `json:"articles"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// Cluster groups articles of one category, as returned by /api/clusters.
type Cluster struct {
	Name     string    `json:"name"`
	Articles []Article `json:"articles"`
}
