// FILE: internal/controller/feed_controller.go
package controller

import (
	"news-feed-client/internal/entity"
	"news-feed-client/internal/remote"
	"news-feed-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedController interface {
	RegisterRoutes(r fiber.Router)
	GetFeed(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	GetClusters(ctx *fiber.Ctx) error
}

type feedController struct {
	feed        service.IFeedService
	session     service.ISessionService
	preferences service.IPreferenceService
	news        remote.INewsClient
	pageSize    int
}

func NewFeedController(feed service.IFeedService, session service.ISessionService, preferences service.IPreferenceService, news remote.INewsClient, pageSize int) IFeedController {
	return &feedController{
		feed:        feed,
		session:     session,
		preferences: preferences,
		news:        news,
		pageSize:    pageSize,
	}
}

func (c *feedController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feed")
	h.Get("/", c.GetFeed)
	h.Get("/search", c.Search)
	h.Get("/clusters", c.GetClusters)
}

func (c *feedController) GetFeed(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", c.pageSize)

	// The viewer's stored preference set drives both the request and the
	// cache key. Anonymous viewers browse unfiltered.
	preferences := c.activePreferences(ctx)

	feedPage, err := c.feed.GetFeed(ctx.Context(), preferences, page, limit)
	if err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Feed page", feedPage)
}

func (c *feedController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", c.pageSize)

	feedPage, err := c.feed.Search(ctx.Context(), query, page, limit)
	if err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Search results", feedPage)
}

func (c *feedController) GetClusters(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", c.pageSize)

	clusters, err := c.news.GetClusters(ctx.Context(), page, limit)
	if err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Clusters", clusters)
}

func (c *feedController) activePreferences(ctx *fiber.Ctx) []string {
	session := c.session.Current()
	if session.Status != entity.SessionAuthenticated || session.User == nil {
		return nil
	}
	preferences, err := c.preferences.Get(ctx.Context(), session.User.Username)
	if err != nil {
		return nil
	}
	return preferences
}
