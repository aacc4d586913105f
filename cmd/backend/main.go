// Package main provides the entry point for the Linkly link-in-bio backend.
package main

import (
	"Linkly-Backend/internal/analytics"
	"Linkly-Backend/internal/attribution"
	"Linkly-Backend/internal/cache"
	"Linkly-Backend/internal/config"
	"Linkly-Backend/internal/database"
	"Linkly-Backend/internal/geo"
	httpHandler "Linkly-Backend/internal/handler/http"
	"Linkly-Backend/internal/ipaddr"
	"Linkly-Backend/internal/repository"
	"Linkly-Backend/internal/repository/cached"
	"Linkly-Backend/internal/repository/postgres"
	"Linkly-Backend/internal/resolver"
	"Linkly-Backend/internal/service"
	"Linkly-Backend/pkg/logger"
	"Linkly-Backend/pkg/useragent"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting Linkly backend", zap.String("env", cfg.Env))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Seed initial data if enabled
	if cfg.Database.SeedData {
		log.Info("seeding database with initial data (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}

	// Initialize User-Agent parser
	if err := useragent.InitGlobalParser("assets/regexes.yaml", log); err != nil {
		log.Warn("failed to initialize User-Agent parser, using fallback", zap.Error(err))
	}

	// Initialize storage
	var storage repository.Storage
	pgStorage, err := postgres.New(db, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	storage = pgStorage

	// Optional Redis cache tier with a bloom filter in front
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			cachedStorage := cached.New(storage, redisCache, log)
			warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := cachedStorage.Warm(warmCtx); err != nil {
				log.Warn("bloom filter warmup failed", zap.Error(err))
			}
			warmCancel()
			storage = cachedStorage
			log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// Start the async click recording pipeline
	processor := analytics.NewProcessor(storage, log, analytics.DefaultConfig())
	if err := processor.Start(); err != nil {
		log.Fatal("failed to start analytics processor", zap.Error(err))
	}
	defer func() {
		if err := processor.Stop(); err != nil {
			log.Error("failed to stop analytics processor", zap.Error(err))
		}
	}()

	// Attribution collaborators: public IP lookup, geolocation chain
	ipSource := ipaddr.NewClient(cfg.Attribution.IPLookupURL, cfg.Attribution.ProviderTimeout, log)
	geoChain := geo.NewChain(
		geo.DefaultSources(cfg.Attribution.ProviderTimeout),
		geo.NewReverseGeocoder(cfg.Attribution.ReverseGeocodeURL, cfg.Attribution.ProviderTimeout),
		cfg.Attribution.PositionTimeout,
		log,
	)
	recorder := attribution.NewRecorder(processor, ipSource, geoChain, log)

	// Identifier resolution and link creation
	res := resolver.New(storage, resolver.NewLogStatus(log), log)
	shortLinkService := service.NewShortLink(storage, &cfg.Shortener)

	// HTTP server
	apiServer := httpHandler.NewServer(
		storage,
		func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		res,
		recorder,
		shortLinkService,
		processor,
		cfg.Attribution.SubmitTimeout,
		log,
		cfg.Shortener.BaseURL,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTPServer.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", addr))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down Linkly backend...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}
