package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	api "github.com/pocketmark/api"
	"github.com/pocketmark/api/bookmarks"
	bookmarkHandlers "github.com/pocketmark/api/bookmarks/handlers"
	bookmarkRepository "github.com/pocketmark/api/bookmarks/repository"
	bookmarkServices "github.com/pocketmark/api/bookmarks/services"
	"github.com/pocketmark/api/categories"
	categoryHandlers "github.com/pocketmark/api/categories/handlers"
	categoryRepository "github.com/pocketmark/api/categories/repository"
	categoryServices "github.com/pocketmark/api/categories/services"
	"github.com/pocketmark/api/classifier"
	"github.com/pocketmark/api/enrichment"
	"github.com/pocketmark/api/internal/cache"
	"github.com/pocketmark/api/internal/database/postgres"
	"github.com/pocketmark/api/internal/pkg/log"
	"github.com/pocketmark/api/internal/pkg/scrape"
	platformconfig "github.com/pocketmark/api/internal/platform/config"
	queueRepository "github.com/pocketmark/api/queue/repository"
	"github.com/pocketmark/api/tiktok"
	tiktokHandlers "github.com/pocketmark/api/tiktok/handlers"
	tiktokRepository "github.com/pocketmark/api/tiktok/repository"
	tiktokServices "github.com/pocketmark/api/tiktok/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		stdlog.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	if err := pgClient.Migrate(api.Migrations); err != nil {
		stdlog.Fatalf("Failed to run migrations: %v", err)
	}

	var appCache cache.Cache = cache.Noop{}
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Address:  cfg.Cache.Address,
			Password: cfg.Cache.Password,
			Database: cfg.Cache.Database,
		})
		if err != nil {
			// The category cache is an optimization; run without it.
			log.Warn("redis unavailable, caching disabled: %v", err)
		} else {
			appCache = redisCache
			defer redisCache.Close()
		}
	}

	classifierClient, err := classifier.NewClient(classifier.ClientConfig{
		APIKey:  cfg.Classifier.APIKey,
		BaseURL: cfg.Classifier.BaseURL,
		Model:   cfg.Classifier.Model,
		Timeout: cfg.Classifier.Timeout,
	})
	if err != nil {
		stdlog.Fatalf("Failed to create classifier client: %v", err)
	}

	bookmarkRepo := bookmarkRepository.NewPostgresRepository(pgClient)
	queueRepo := queueRepository.NewPostgresRepository(pgClient)
	categoryRepo := categoryRepository.NewPostgresRepository(pgClient)
	tokenRepo := tiktokRepository.NewPostgresTokenRepository(pgClient)

	bookmarkService := bookmarkServices.NewService(bookmarkRepo, queueRepo)
	categoryService := categoryServices.NewService(categoryRepo, appCache, cfg.Cache.TTL)

	fetcher := scrape.NewFetcher(scrape.Config{
		Timeout:   cfg.Scrape.Timeout,
		UserAgent: cfg.Scrape.UserAgent,
	})
	platformClient := tiktok.NewClient(tiktok.ClientConfig{
		BaseURL:      cfg.TikTok.APIBaseURL,
		AuthBaseURL:  cfg.TikTok.AuthBaseURL,
		ClientKey:    cfg.TikTok.ClientKey,
		ClientSecret: cfg.TikTok.ClientSecret,
		RedirectURI:  cfg.TikTok.RedirectURI,
	})
	tiktokService := tiktokServices.NewService(bookmarkService, tokenRepo, platformClient, fetcher)

	worker := enrichment.NewWorker(bookmarkRepo, queueRepo, classifierClient)
	poller := enrichment.NewPoller(queueRepo, worker, enrichment.PollerConfig{
		Concurrency:       cfg.Worker.Concurrency,
		PollInterval:      cfg.Worker.PollInterval,
		ProcessingTimeout: cfg.Worker.ProcessingTimeout,
	})
	if cfg.Worker.Enabled {
		poller.Start(ctx)
		defer poller.Stop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			// Handlers write their own error bodies; only fill in the gaps.
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	bookmarks.RegisterRoutes(app, &bookmarks.Handlers{
		BookmarkHandler: bookmarkHandlers.NewBookmarkHandler(bookmarkService),
	}, cfg)
	tiktokHandlers.RegisterRoutes(app, tiktokHandlers.NewTikTokHandler(tiktokService), cfg)
	enrichment.RegisterRoutes(app, enrichment.NewHandler(bookmarkService, worker), cfg)
	categories.RegisterRoutes(app, categoryHandlers.NewCategoryHandler(categoryService), cfg)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown error: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting Pocketmark API on %s", addr)
	if err := app.Listen(addr); err != nil {
		stdlog.Fatalf("Server stopped: %v", err)
	}
}
