package bootstrap

import (
	"log"

	"news-feed-client/internal/config"
	"news-feed-client/internal/controller"
	"news-feed-client/internal/pkg/logger"
	"news-feed-client/internal/remote"
	"news-feed-client/internal/repository/contract"
	"news-feed-client/internal/repository/implementation"
	"news-feed-client/internal/repository/memory"
	redisrepo "news-feed-client/internal/repository/redis"
	"news-feed-client/internal/service"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	FeedController       controller.IFeedController
	PreferenceController controller.IPreferenceController

	// Exposed for main.go to await rehydration before serving
	SessionService service.ISessionService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Durable Stores
	credentials, preferences := buildStores(cfg)

	// 3. Remote Transport
	// The client and the session service reference each other (token
	// source one way, forced logout the other), so the hooks are wired
	// after both exist.
	client := remote.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout, cfg.Backend.RetryInterval, sysLogger)
	authClient := remote.NewAuthClient(client)
	newsClient := remote.NewNewsClient(client)
	summarizeClient := remote.NewSummarizeClient(client)

	// 4. Services
	sessionService := service.NewSessionService(authClient, credentials, sysLogger)
	client.SetTokenSource(sessionService.Token)
	client.SetAuthRejectedHook(sessionService.ForceLogout)

	feedCache := memory.NewFeedCache(cfg.Feed.CacheRetention)
	feedService := service.NewFeedService(newsClient, summarizeClient, feedCache, cfg.Feed.StaleAfter, sysLogger)
	preferenceService := service.NewPreferenceService(preferences, sysLogger)

	// 5. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		FeedController:       controller.NewFeedController(feedService, sessionService, preferenceService, newsClient, cfg.Feed.PageSize),
		PreferenceController: controller.NewPreferenceController(preferenceService, sessionService),
		SessionService:       sessionService,
		Logger:               sysLogger,
	}
}

func buildStores(cfg *config.Config) (contract.CredentialRepository, contract.PreferenceRepository) {
	if cfg.Store.Backend == "redis" {
		opts, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			log.Panicf("Invalid REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		return redisrepo.NewCredentialRepository(rdb), redisrepo.NewPreferenceRepository(rdb)
	}

	credentials, err := implementation.NewFileCredentialRepository(cfg.Store.DataDir)
	if err != nil {
		log.Panicf("Unable to open credential store: %v", err)
	}
	preferences, err := implementation.NewFilePreferenceRepository(cfg.Store.DataDir)
	if err != nil {
		log.Panicf("Unable to open preference store: %v", err)
	}
	return credentials, preferences
}
