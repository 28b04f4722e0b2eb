package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"boycott-check/api"
	"boycott-check/catalog"
	"boycott-check/config"
	"boycott-check/metrics"
	"boycott-check/services"
	"boycott-check/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logging, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	// Katalog einmalig laden, danach nur noch lesend
	cat, source, err := loadCatalog(cfg)
	if err != nil {
		logging.Fatal("Failed to load boycott catalog", zap.Error(err))
	}
	for _, category := range cat.UnmappedCategories() {
		logging.Warn("Category has no alternatives", zap.String("category", category))
	}
	metrics.CatalogEntries.Set(float64(cat.Len()))
	logging.Info("Boycott catalog loaded",
		zap.String("source", source),
		zap.Int("entries", cat.Len()),
		zap.Strings("categories", cat.Categories()),
	)

	matcher := services.NewMatcher(cat, logging)
	limiters := api.NewLimiters(cfg)

	router, err := api.NewRouter(cfg, matcher, limiters, logging)
	if err != nil {
		logging.Fatal("Failed to set up router", zap.Error(err))
	}

	// Setup Cron
	cronScheduler := cron.New()
	_, err = cronScheduler.AddFunc(cfg.LimiterPruneSchedule, func() {
		pruned := limiters.Prune()
		metrics.LimiterKeysPruned.Add(float64(pruned))
		logging.Debug("Pruned idle rate limiter keys", zap.Int("pruned", pruned))
	})
	if err != nil {
		logging.Fatal("Invalid limiter prune schedule", zap.String("schedule", cfg.LimiterPruneSchedule), zap.Error(err))
	}
	cronScheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	go func() {
		logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("Shutting down server")

	<-cronScheduler.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadCatalog wählt die Katalogquelle: S3, dann Datei, sonst den eingebetteten Standard.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, string, error) {
	switch {
	case cfg.CatalogFromS3():
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		data, err := storage.FetchObject(ctx, client, cfg.CatalogS3Bucket, cfg.CatalogS3Key)
		if err != nil {
			return nil, "", err
		}
		c, err := catalog.Parse(data)
		return c, "s3://" + cfg.CatalogS3Bucket + "/" + cfg.CatalogS3Key, err
	case cfg.CatalogFile != "":
		c, err := catalog.LoadFile(cfg.CatalogFile)
		return c, cfg.CatalogFile, err
	default:
		c, err := catalog.Default()
		return c, "embedded", err
	}
}
