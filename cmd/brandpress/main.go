// Package main is the entry point for the BrandPress server.
// It loads configuration, opens the database, connects to Valkey, sets
// up routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandpress/internal/ai"
	"brandpress/internal/cache"
	"brandpress/internal/config"
	"brandpress/internal/database"
	"brandpress/internal/engine"
	"brandpress/internal/handlers"
	"brandpress/internal/render"
	"brandpress/internal/router"
	"brandpress/internal/scrape"
	"brandpress/internal/session"
	"brandpress/internal/storage"
	"brandpress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "db", cfg.DBPath)

	// Open the SQLite database and apply embedded migrations.
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the two brand configs (no-op if brands already exist).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey for sessions and the preview cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword, 0)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient, cfg.SessionSecret)
	previewCache := cache.NewPreviewCache(valkeyClient)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	eng, err := engine.New()
	if err != nil {
		slog.Error("failed to initialize newsletter engine", "error", err)
		os.Exit(1)
	}

	// Optional S3-compatible storage for uploads; nil means local disk.
	var storageClient *storage.Client
	if cfg.S3Enabled() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		}
	} else {
		slog.Info("uploads stored locally", "dir", cfg.UploadsDir)
	}

	scraper := scrape.New()
	provider := ai.NewClaude(ai.ProviderConfig{
		APIKey: cfg.AnthropicAPIKey,
		Model:  cfg.AIModel,
	})
	drafter := ai.NewDrafter(provider, scraper)

	app, err := handlers.NewApp(handlers.Deps{
		Config:      cfg,
		DB:          db,
		Renderer:    renderer,
		Sessions:    sessionStore,
		Previews:    previewCache,
		Brands:      store.NewBrandStore(db),
		Newsletters: store.NewNewsletterStore(db),
		Sections:    store.NewSectionStore(db),
		Eblasts:     store.NewEblastStore(db),
		Images:      store.NewImageStore(db),
		Fallback:    store.NewFallbackStore(cfg.OutputsDir),
		Engine:      eng,
		Drafter:     drafter,
		Scraper:     scraper,
		Storage:     storageClient,
	})
	if err != nil {
		slog.Error("failed to initialize handlers", "error", err)
		os.Exit(1)
	}

	r := router.New(sessionStore, app, cfg.UploadsDir)

	// WriteTimeout must accommodate the AI endpoint, which waits on the
	// model for up to a minute.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
