// FILE: internal/dto/feed_dto.go
package dto

import "news-feed-client/internal/entity"

// NewsResponse is the stage-one payload from /api/news and /api/search.
type NewsResponse struct {
	Articles   []entity.Article `json:"articles"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type SummarizeRequest struct {
	Texts []string `json:"texts" validate:"required,min=1"`
}

type SummaryResult struct {
	Summary string `json:"summary"`
}

// SummarizeResponse carries one result per input text, positionally
// aligned. The backend may return fewer results than inputs on partial
// failure; the merge step pads the tail with the fallback summary.
type SummarizeResponse struct {
	Results []SummaryResult `json:"results"`
}

type ClusterResponse struct {
	Clusters   []entity.Cluster `json:"clusters"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type PreferencesRequest struct {
	Categories []string `json:"categories" validate:"required"`
}
