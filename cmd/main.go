package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/clanpulse/internal/adapters/chat"
	"github.com/okian/clanpulse/internal/adapters/cocapi"
	"github.com/okian/clanpulse/internal/adapters/http/api"
	app "github.com/okian/clanpulse/internal/app"
	"github.com/okian/clanpulse/internal/config"
	"github.com/okian/clanpulse/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Clan API client
	fetcher := cocapi.New(cfg.APIBaseURL, cfg.APIToken, cfg.ClanTag,
		cocapi.WithTopN(cfg.TopN),
		cocapi.WithAttempts(uint(cfg.FetchAttempts)),
	)

	// Chat transport
	sender, err := chat.NewDiscordSender(cfg.DiscordToken, cfg.DiscordChannelID)
	if err != nil {
		os.Stderr.WriteString("failed to create chat sender: " + err.Error() + "\n")
		return
	}
	if err := sender.Open(ctx); err != nil {
		os.Stderr.WriteString("failed to open chat session: " + err.Error() + "\n")
		return
	}
	defer func() { _ = sender.Close() }()

	// Create and start the tracker service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithFetcher(fetcher),
		app.WithSender(sender),
		app.WithQueueSize(cfg.QueueSize),
		app.WithWorkerCount(cfg.DeliveryWorkers),
		app.WithShardCount(cfg.ShardCount),
		app.WithDayOffset(cfg.DayOffsetMinutes),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Drive the poll and boundary-check cadences
	go startPollLoop(ctx, svc, time.Duration(cfg.PollIntervalSeconds)*time.Second)
	go startBoundaryLoop(ctx, svc, time.Duration(cfg.BoundaryCheckSeconds)*time.Second)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	apiServer := api.NewServer(svc, svc, cfg.TopN, cfg.MaxTopLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startPollLoop fires one poll tick per interval. The first tick runs
// immediately so the baseline is established without waiting.
func startPollLoop(ctx context.Context, svc *app.Service, interval time.Duration) {
	log := logger.Named("poll")

	tick := func() {
		if err := svc.OnPollTick(ctx); err != nil {
			log.Error(ctx, "poll tick failed", logger.Error(err))
		}
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

// startBoundaryLoop checks for day rollover on its own cadence.
func startBoundaryLoop(ctx context.Context, svc *app.Service, interval time.Duration) {
	log := logger.Named("boundary")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.OnDayBoundaryCheck(ctx); err != nil {
				log.Error(ctx, "boundary check failed", logger.Error(err))
			}
		}
	}
}
