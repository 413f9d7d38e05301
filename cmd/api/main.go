// cmd/api/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trendboard/internal/adapter/storage"
	"trendboard/internal/config"
	"trendboard/internal/server"
	"trendboard/internal/server/handlers"
	insightService "trendboard/internal/service/insight"
	"trendboard/internal/service/social"
	"trendboard/internal/service/watch"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dataset store over the three corpus files
	datasetStore := storage.NewDatasetStore(
		cfg.Dataset.Dir,
		cfg.Dataset.WorldFile,
		cfg.Dataset.RegionFile,
		cfg.Dataset.TweetsFile,
	)

	// Initialize aggregation core and snapshot cache
	analyzer := insightService.NewAnalyzer(datasetStore)
	snapshots := insightService.NewSnapshotService(analyzer, datasetStore)

	// Warm the snapshot so startup surfaces corpus problems immediately
	if snapshot, err := snapshots.Current(ctx); err != nil {
		log.Printf("Initial snapshot unavailable: %v", err)
	} else {
		log.Printf("Initial snapshot %s loaded", snapshot.ID)
	}

	// Initialize update hub for dashboard clients
	hub := handlers.NewUpdateHub()

	// Initialize dataset watcher
	var watcher *watch.Watcher
	if cfg.Dataset.Watch {
		watcher = watch.NewWatcher(
			watch.WatcherConfig{
				Dir:      cfg.Dataset.Dir,
				Files:    []string{cfg.Dataset.WorldFile, cfg.Dataset.RegionFile, cfg.Dataset.TweetsFile},
				Debounce: cfg.Dataset.WatchDebounce,
			},
			snapshots,
			hub,
		)
		if err := watcher.Start(ctx); err != nil {
			log.Fatalf("Failed to start dataset watcher: %v", err)
		}
	}

	// Initialize corpus refresher
	twitterClient := social.NewClient(social.ClientConfig{
		BearerToken: cfg.Twitter.BearerToken,
		BaseURL:     cfg.Twitter.BaseURL,
		Timeout:     cfg.Twitter.Timeout,
	})
	refresher := social.NewRefresher(
		twitterClient,
		social.RefresherConfig{
			WorldWoeID:  cfg.Twitter.WorldWoeID,
			RegionWoeID: cfg.Twitter.RegionWoeID,
			Query:       cfg.Twitter.Query,
			SearchCount: cfg.Twitter.SearchCount,
		},
		datasetStore.Paths(),
		snapshots,
	)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		cfg.Dashboard,
		snapshots,
		refresher,
		hub,
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Stop dataset watcher
	if watcher != nil {
		if err := watcher.Stop(shutdownCtx); err != nil {
			log.Printf("Dataset watcher shutdown error: %v", err)
		}
	}

	log.Println("Shutdown complete")
}
