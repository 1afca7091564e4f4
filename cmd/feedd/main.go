package main

import (
	"context"
	"log"

	"news-feed-client/internal/bootstrap"
	"news-feed-client/internal/config"
	"news-feed-client/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Rehydrate the session before serving: feed requests depend on the
	// active user's preferences, so the facade must not accept traffic
	// while the session could still be mid-rehydration.
	if err := container.SessionService.Initialize(context.Background()); err != nil {
		container.Logger.Warn("main", "session rehydration failed, starting unauthenticated", map[string]interface{}{"error": err.Error()})
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
