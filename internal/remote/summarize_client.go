// FILE: internal/remote/summarize_client.go
package remote

import (
	"context"
	"net/http"

	"news-feed-client/internal/dto"
)

type ISummarizeClient interface {
	// Summarize sends one batched request; results come back positionally
	// aligned with texts. The endpoint lives at the server root, outside
	// the /api prefix.
	Summarize(ctx context.Context, texts []string) (*dto.SummarizeResponse, error)
}

type summarizeClient struct {
	client *Client
}

func NewSummarizeClient(client *Client) ISummarizeClient {
	return &summarizeClient{client: client}
}

func (s *summarizeClient) Summarize(ctx context.Context, texts []string) (*dto.SummarizeResponse, error) {
	var res dto.SummarizeResponse
	err := s.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/summarize",
		body:   &dto.SummarizeRequest{Texts: texts},
		out:    &res,
		// The batch is a pure function of its input, safe to repeat.
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
