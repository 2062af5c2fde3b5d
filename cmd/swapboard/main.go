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

	"SwapBoard/internal/api"
	"SwapBoard/internal/cache"
	"SwapBoard/internal/collector"
	"SwapBoard/internal/config"
	"SwapBoard/internal/recorder"
	"SwapBoard/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SwapBoard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher
	var fetcher collector.SeriesFetcher
	switch {
	case os.Getenv("MOCK_DATA") == "true":
		fetcher = &collector.MockFetcher{Price: 3000}
	case cfg.Binance.Enabled:
		fetcher = &collector.FallbackFetcher{Fetchers: []collector.SeriesFetcher{
			collector.NewCoinGeckoFetcher(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, cfg.Proxy, cfg.CoinGecko.RatePerMinute),
			collector.NewBinanceFetcher(cfg.Binance.BaseURL),
		}}
	default:
		fetcher = collector.NewCoinGeckoFetcher(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, cfg.Proxy, cfg.CoinGecko.RatePerMinute)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init cache
	var c cache.Cache
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Printf("[WARN] init redis cache failed, using memory: %v", err)
			c = cache.NewMemoryCache()
		} else {
			c = rc
		}
	} else {
		c = cache.NewMemoryCache()
	}
	defer c.Close()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.Driver != "none" {
		sr, err := recorder.NewSQLRecorder(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			log.Printf("[WARN] init %s recorder failed, using noop: %v", cfg.Database.Driver, err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Init collector
	col := collector.NewCollector(fetcher, c, rec)
	col.TTL = cfg.Cache.TTL

	quotes := collector.NewZeroExClient(cfg.ZeroEx.BaseURL, cfg.ZeroEx.APIKey, cfg.Proxy)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, cfg.Watchlist)
	if err := sched.RegisterAll(cfg.Schedule.WarmCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, warming cache now")
		go sched.RunWarmNow()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewHandler(col, quotes).SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Printf("[INFO] SwapBoard is listening on %s. Press Ctrl+C to stop.", cfg.Server.Addr)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] SwapBoard stopped")
}
