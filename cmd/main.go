/*
Package main is the entry point of the ghprofile service.

It loads configuration, initializes logging, opens the durable profile slot, builds the profile
container, the GitHub lookup client and the WebSocket feed, serves the HTTP API, and shuts everything
down in order on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"ghprofile/internal/app/feed"
	"ghprofile/internal/app/lookup"
	"ghprofile/internal/app/profile"
	"ghprofile/internal/app/storage"
	"ghprofile/internal/configs"
	"ghprofile/internal/handler"
	"ghprofile/internal/pkg/limiter"
	"ghprofile/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("storage_driver", cfg.StorageDriver).
		Str("github_api", cfg.GitHubAPIURL).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, storage.ConfigFromApp(cfg))
	if err != nil {
		logx.Fatal(err, "Failed to open profile storage", "driver", cfg.StorageDriver)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logx.Error(err, "Failed to close profile storage")
		}
	}()

	container := profile.NewContainer(ctx, store)

	lookupClient, err := lookup.NewClient(cfg.GitHubAPIURL, &http.Client{Timeout: cfg.LookupTimeout})
	if err != nil {
		logx.Fatal(err, "Failed to create GitHub lookup client")
	}

	hub := feed.NewHub(container)
	go hub.Run()

	lookupLimiter := limiter.NewIPRateLimiter(rate.Limit(cfg.LookupRate), cfg.LookupBurst)
	defer lookupLimiter.Stop()

	router := handler.Router(&handler.AppDeps{
		Config:        cfg,
		State:         container,
		Searcher:      profile.NewSearcher(lookupClient, container),
		Feed:          hub,
		LookupLimiter: lookupLimiter,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("ghprofile starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// Feed connections are hijacked and not tracked by Shutdown; close them first.
	hub.Shutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.", "username", container.Current().Username)
}
