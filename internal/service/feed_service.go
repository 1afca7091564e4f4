// FILE: internal/service/feed_service.go
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"news-feed-client/internal/dto"
	"news-feed-client/internal/entity"
	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/pkg/logger"
	"news-feed-client/internal/remote"
	"news-feed-client/internal/repository/memory"

	"golang.org/x/sync/singleflight"
)

const (
	// descriptionPlaceholder is what the news backend emits when an article
	// has no description; the title is the summarization input instead.
	descriptionPlaceholder = "No description available"
	// fallbackSummary replaces any summary the enrichment stage could not
	// produce. Enrichment is best-effort, never load-bearing.
	fallbackSummary = "Unable to generate summary"
)

type IFeedService interface {
	// GetFeed returns one enriched page for the given preference set.
	// An empty set means unfiltered. Results are cached per normalized
	// (preferences, page, limit) key; concurrent identical calls share a
	// single two-stage fetch.
	GetFeed(ctx context.Context, preferences []string, page, limit int) (*entity.FeedPage, error)
	// Search runs the same two-stage pipeline over the search endpoint.
	Search(ctx context.Context, query string, page, limit int) (*entity.FeedPage, error)
}

type feedService struct {
	news      remote.INewsClient
	summaries remote.ISummarizeClient
	cache     *memory.FeedCache
	group     singleflight.Group
	stale     time.Duration
	now       func() time.Time
	log       logger.ILogger
}

func NewFeedService(news remote.INewsClient, summaries remote.ISummarizeClient, cache *memory.FeedCache, staleAfter time.Duration, log logger.ILogger) IFeedService {
	return &feedService{
		news:      news,
		summaries: summaries,
		cache:     cache,
		stale:     staleAfter,
		now:       time.Now,
		log:       log,
	}
}

func (s *feedService) GetFeed(ctx context.Context, preferences []string, page, limit int) (*entity.FeedPage, error) {
	categories := NormalizeCategories(preferences)
	key := feedCacheKey(categories, page, limit)

	return s.cachedFetch(ctx, key, func(fctx context.Context) (*entity.FeedPage, error) {
		res, err := s.news.GetNews(fctx, categories, page, limit)
		if err != nil {
			return nil, err
		}
		return s.enrich(fctx, res), nil
	})
}

func (s *feedService) Search(ctx context.Context, query string, page, limit int) (*entity.FeedPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierror.New(apierror.KindValidation, "search query must not be empty")
	}
	key := searchCacheKey(query, page, limit)

	return s.cachedFetch(ctx, key, func(fctx context.Context) (*entity.FeedPage, error) {
		res, err := s.news.Search(fctx, query, page, limit)
		if err != nil {
			return nil, err
		}
		return s.enrich(fctx, res), nil
	})
}

// cachedFetch serves fresh cache hits, coalesces concurrent misses per key,
// and falls back to a stale entry when a refresh fails. A failed fetch with
// no cached value propagates the error.
func (s *feedService) cachedFetch(ctx context.Context, key string, fetch func(context.Context) (*entity.FeedPage, error)) (*entity.FeedPage, error) {
	if entry, found := s.cache.Get(key); found && s.fresh(entry) {
		return entry, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Re-check after winning the flight: a coalesced predecessor may
		// have populated the cache between our miss and now.
		if entry, found := s.cache.Get(key); found && s.fresh(entry) {
			return entry, nil
		}

		// The fetch outlives any single caller: whoever abandons the call,
		// coalesced waiters and the cache still get the result.
		page, ferr := fetch(context.WithoutCancel(ctx))
		if ferr != nil {
			return nil, ferr
		}
		s.cache.Set(key, page)
		return page, nil
	})
	if err != nil {
		if entry, found := s.cache.Get(key); found {
			s.log.Warn("feed", "refresh failed, serving stale page", map[string]interface{}{
				"key":   key,
				"age":   s.now().Sub(entry.FetchedAt).String(),
				"error": err.Error(),
			})
			return entry, nil
		}
		return nil, err
	}
	return v.(*entity.FeedPage), nil
}

// enrich runs stage two over a stage-one response and merges positionally.
// The returned page always has exactly as many articles as stage one.
func (s *feedService) enrich(ctx context.Context, res *dto.NewsResponse) *entity.FeedPage {
	page := &entity.FeedPage{
		Articles:   append([]entity.Article(nil), res.Articles...),
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
		FetchedAt:  s.now(),
	}

	// Zero articles short-circuits: an empty page, no stage-two call.
	if len(page.Articles) == 0 {
		page.Articles = []entity.Article{}
		page.Total = 0
		page.TotalPages = 0
		return page
	}

	texts := make([]string, len(page.Articles))
	for i, article := range page.Articles {
		if article.Description != descriptionPlaceholder {
			texts[i] = article.Description
		} else {
			texts[i] = article.Title
		}
	}

	summaries, err := s.summaries.Summarize(ctx, texts)
	if err != nil {
		// Degrade, don't fail: the feed stays usable without summaries.
		s.log.Warn("feed", "summarization failed, using fallback summaries", map[string]interface{}{
			"articles": len(page.Articles),
			"error":    apierror.Wrap(apierror.KindPartialEnrichment, "summarize batch failed", err).Error(),
		})
		for i := range page.Articles {
			page.Articles[i].Summary = fallbackSummary
		}
		return page
	}

	for i := range page.Articles {
		if i < len(summaries.Results) && summaries.Results[i].Summary != "" {
			page.Articles[i].Summary = summaries.Results[i].Summary
		} else {
			page.Articles[i].Summary = fallbackSummary
		}
	}
	if len(summaries.Results) < len(page.Articles) {
		s.log.Warn("feed", "summarize batch returned fewer results than inputs", map[string]interface{}{
			"want": len(page.Articles),
			"got":  len(summaries.Results),
		})
	}
	return page
}

func (s *feedService) fresh(entry *entity.FeedPage) bool {
	return s.now().Sub(entry.FetchedAt) < s.stale
}

func feedCacheKey(categories []string, page, limit int) string {
	return "feed|" + strings.Join(categories, ",") + "|page=" + strconv.Itoa(page) + "|limit=" + strconv.Itoa(limit)
}

func searchCacheKey(query string, page, limit int) string {
	return "search|" + query + "|page=" + strconv.Itoa(page) + "|limit=" + strconv.Itoa(limit)
}
