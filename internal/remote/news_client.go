// FILE: internal/remote/news_client.go
package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"news-feed-client/internal/dto"
)

type INewsClient interface {
	// GetNews fetches one page of articles. An empty category list means
	// unfiltered: the parameter is omitted entirely, never sent empty.
	GetNews(ctx context.Context, categories []string, page, limit int) (*dto.NewsResponse, error)
	Search(ctx context.Context, query string, page, limit int) (*dto.NewsResponse, error)
	GetClusters(ctx context.Context, page, limit int) (*dto.ClusterResponse, error)
}

type newsClient struct {
	client *Client
}

func NewNewsClient(client *Client) INewsClient {
	return &newsClient{client: client}
}

func (n *newsClient) GetNews(ctx context.Context, categories []string, page, limit int) (*dto.NewsResponse, error) {
	query := url.Values{}
	if len(categories) > 0 {
		query.Set("categories", strings.Join(categories, ","))
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var res dto.NewsResponse
	err := n.client.do(ctx, call{
		method:    http.MethodGet,
		path:      "/api/news",
		query:     query,
		out:       &res,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (n *newsClient) Search(ctx context.Context, q string, page, limit int) (*dto.NewsResponse, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var res dto.NewsResponse
	err := n.client.do(ctx, call{
		method:    http.MethodGet,
		path:      "/api/search",
		query:     query,
		out:       &res,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (n *newsClient) GetClusters(ctx context.Context, page, limit int) (*dto.ClusterResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var res dto.ClusterResponse
	err := n.client.do(ctx, call{
		method:    http.MethodGet,
		path:      "/api/clusters",
		query:     query,
		out:       &res,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
