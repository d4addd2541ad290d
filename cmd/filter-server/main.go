// cmd/filter-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storefront-filters/internal/cache"
	"storefront-filters/internal/common/aws"
	"storefront-filters/internal/common/config"
	"storefront-filters/internal/common/database"
	"storefront-filters/internal/common/logger"
	"storefront-filters/internal/common/observability"
	alertsrepo "storefront-filters/internal/repository/alerts"
	catalogrepo "storefront-filters/internal/repository/catalog"
	"storefront-filters/internal/search"
	alertsvc "storefront-filters/internal/service/alerts"
	"storefront-filters/internal/service/listing"
	transport "storefront-filters/internal/transport/http"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting filter server",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	repo := catalogrepo.New(pg.DB)

	// --- Init Redis cache (optional) ---
	var catalogCache listing.Cache
	if cfg.Catalog.CacheEnabled {
		redis := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected")

		ttl := time.Duration(cfg.Catalog.CacheTTL) * time.Second
		catalogCache = cache.New(redis.Client, ttl, log)
	}

	// --- Init Elasticsearch search (optional) ---
	var searcher listing.Searcher
	if cfg.Database.Elasticsearch.Enabled() {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected")

		searcher = search.NewProductSearcher(esClient.Client, cfg.Database.Elasticsearch.Index, log)
	}

	listingService := listing.New(repo, catalogCache, searcher, cfg.Catalog, log)

	// --- Init stock alerts (optional) ---
	var alertService transport.AlertService
	if cfg.Alerts.Enabled {
		mailer, err := alertsvc.NewMailer(ctx, cfg.Alerts.Mail)
		if err != nil {
			zapLog.Fatal("mailer init failed", zap.Error(err))
		}

		var sms alertsvc.SMSSender
		if cfg.Alerts.SMS.Enabled {
			snsClient, err := aws.NewSNSClient(ctx, cfg.Alerts.SMS.Region)
			if err != nil {
				zapLog.Fatal("sns client init failed", zap.Error(err))
			}
			sms = alertsvc.NewSNSNotifier(snsClient, cfg.Alerts.SMS.SenderID)
		}

		svc := alertsvc.New(alertsrepo.New(pg.DB), repo, mailer, sms, log)
		alertService = svc

		interval := time.Duration(cfg.Alerts.SweepInterval) * time.Second
		go svc.Run(ctx, interval)
	}

	router := transport.NewRouter(listingService, alertService, pg.DB, obs, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("stopped")
}
