package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wkstats/internal/api"
	"github.com/vytor/wkstats/internal/cache"
	"github.com/vytor/wkstats/internal/config"
	"github.com/vytor/wkstats/internal/jobs"
	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/monitoring"
	"github.com/vytor/wkstats/internal/services"
	"github.com/vytor/wkstats/internal/timeutil"
	"github.com/vytor/wkstats/internal/wanikani"
	"github.com/vytor/wkstats/internal/worker"
)

func main() {
	cfg := config.Load()

	logOpts := []logger.Option{
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	}
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile))
	}
	log := logger.New(logOpts...)
	logger.SetDefault(log)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("WaniKani Stats Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("wanikani_base_url=%s", cfg.WaniKaniBaseURL)
	log.Debug("request_timeout=%s", cfg.RequestTimeout)
	log.Debug("rate_limit_per_minute=%d", cfg.RateLimitPerMinute)
	log.Debug("cache_size=%d cache_ttl=%s", cfg.CacheSize, cfg.CacheTTL)
	log.Debug("prefetch_worker_count=%d prefetch_queue_size=%d", cfg.PrefetchWorkerCount, cfg.PrefetchQueueSize)

	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error("failed to load timezone: %v", err)
		os.Exit(1)
	}

	metrics := monitoring.New()
	clock := timeutil.SystemClock{}

	clientOpts := []wanikani.Option{
		wanikani.WithBaseURL(cfg.WaniKaniBaseURL),
		wanikani.WithRevision(cfg.WaniKaniRevision),
		wanikani.WithTimeout(cfg.RequestTimeout),
		wanikani.WithRateLimit(cfg.RateLimitPerMinute),
		wanikani.WithMetrics(metrics),
		wanikani.WithClock(clock),
		wanikani.WithLocation(loc),
	}
	if cfg.CacheSize > 0 {
		clientOpts = append(clientOpts, wanikani.WithCache(cache.New(cfg.CacheSize, cfg.CacheTTL)))
	} else {
		log.Info("response cache disabled")
	}
	client := wanikani.New(clientOpts...)

	// Prefetching only pays off when there is a cache to warm.
	var (
		prefetchPool *worker.Pool
		jobQueue     jobs.JobQueue
	)
	if cfg.PrefetchWorkerCount > 0 && cfg.CacheSize > 0 {
		prefetchPool = worker.NewPool(cfg.PrefetchWorkerCount, cfg.PrefetchQueueSize)
		jobQueue = jobs.NewWorkerQueue(prefetchPool, client, metrics)
	}

	srv := &api.Server{
		DashboardService: services.NewDashboardService(client, jobQueue, clock, loc),
		Metrics:          metrics,
	}

	ctx, cancel := context.WithCancel(context.Background())
	if prefetchPool != nil {
		prefetchPool.Start(ctx)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)
	srv.Drain()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping prefetch pool")
	cancel()
	if prefetchPool != nil {
		prefetchPool.Stop()
	}

	log.Info("===========================================")
	log.Info("WaniKani Stats Server Stopped")
	log.Info("===========================================")
}
