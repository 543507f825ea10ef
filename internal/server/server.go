// Package server boots the HTTP API: configuration, connections, middleware
// stack, and routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/reqid"
	"github.com/shashiranjanraj/bistro/pkg/router"
	"github.com/shashiranjanraj/bistro/pkg/storage"
)

// Start boots the API and blocks serving HTTP.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if config.AppEnv() == "production" && config.JWTSecret() == "change-me-in-production" {
		return fmt.Errorf("server: JWT_SECRET must be set in production")
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	// Redis is optional: a miss just means every menu read hits Mongo.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}

	storage.Connect()

	if config.LogMongo() {
		mh, err := logger.UseMongo(config.MongoURI(), config.MongoDB())
		if err != nil {
			logger.Warn("mongo log handler disabled", "error", err)
		} else {
			defer mh.Close()
		}
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r)

	addr := ":" + config.AppPort()
	logger.Info("bistro api listening", "addr", addr, "env", config.AppEnv())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
