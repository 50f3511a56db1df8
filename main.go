package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/y345-git/Campus-Navigation/config"
	"github.com/y345-git/Campus-Navigation/handlers"
	"github.com/y345-git/Campus-Navigation/metrics"
	"github.com/y345-git/Campus-Navigation/routing"
)

func main() {
	// A .env file is optional; real deployments set the environment.
	_ = godotenv.Load()

	log := newLogger()

	configDir := envOr("CONFIG_DIR", "data")
	store, err := config.Open(configDir, log)
	if err != nil {
		log.Error("could not load configuration", "dir", configDir, "error", err)
		os.Exit(1)
	}

	cache := routing.NewCache(store, log)
	store.OnChange(func(scope string) {
		metrics.GraphInvalidations.WithLabelValues(scopeLabel(scope)).Inc()
		cache.Invalidate(scope)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := config.NewWatcher(store, log)
	if err != nil {
		log.Warn("config watcher disabled", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	// Compile eagerly so a broken config fails at startup, not on the
	// first request.
	if _, err := cache.Campus(); err != nil {
		log.Error("campus graph did not compile", "error", err)
		os.Exit(1)
	}
	for _, buildingID := range store.Interiors() {
		if _, err := cache.Building(buildingID); err != nil {
			log.Error("interior graph did not compile", "building", buildingID, "error", err)
			os.Exit(1)
		}
	}

	planner := routing.NewPlanner(cache)

	if envOr("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if origins := envOr("CORS_ORIGINS", ""); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	handlers.NewRouteHandler(planner, cache, store, log).RegisterRoutes(r)
	handlers.NewAdminHandler(store, log).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := envOr("PORT", "8080")
	log.Info("campus navigation server listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if envOr("LOG_LEVEL", "") == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if envOr("LOG_FORMAT", "") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func scopeLabel(scope string) string {
	if scope == config.ScopeCampus {
		return "campus"
	}
	return "building"
}
