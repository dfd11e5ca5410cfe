package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/clanpulse/internal/adapters/http/api"
	app "github.com/okian/clanpulse/internal/app"
	"github.com/okian/clanpulse/internal/config"
	"github.com/okian/clanpulse/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func setTestEnv() {
	_ = os.Setenv("CLANPULSE_ADDR", ":8080")
	_ = os.Setenv("CLANPULSE_API_TOKEN", "test-token")
	_ = os.Setenv("CLANPULSE_CLAN_TAG", "#TESTCLAN")
	_ = os.Setenv("CLANPULSE_DISCORD_TOKEN", "test-discord-token")
	_ = os.Setenv("CLANPULSE_DISCORD_CHANNEL_ID", "42")
	_ = os.Setenv("CLANPULSE_QUEUE_SIZE", "1000")
	_ = os.Setenv("CLANPULSE_DELIVERY_WORKERS", "4")
}

func unsetTestEnv() {
	for _, key := range []string{
		"CLANPULSE_ADDR", "CLANPULSE_API_TOKEN", "CLANPULSE_CLAN_TAG",
		"CLANPULSE_DISCORD_TOKEN", "CLANPULSE_DISCORD_CHANNEL_ID",
		"CLANPULSE_QUEUE_SIZE", "CLANPULSE_DELIVERY_WORKERS",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			setTestEnv()
			defer unsetTestEnv()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.DeliveryWorkers, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(2000),
					app.WithDayOffset(-300),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, 25, 100)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			setTestEnv()
			defer unsetTestEnv()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				// Load configuration
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				// Create service (without starting to avoid network dependencies)
				svc := app.New(
					app.WithWorkerCount(cfg.DeliveryWorkers),
					app.WithQueueSize(cfg.QueueSize),
					app.WithShardCount(cfg.ShardCount),
					app.WithDayOffset(cfg.DayOffsetMinutes),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				// Create HTTP server
				server := api.NewServer(svc, svc, cfg.TopN, cfg.MaxTopLimit)
				convey.So(server, convey.ShouldNotBeNil)

				// Create HTTP mux
				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				// Register routes
				server.Register(ctx, mux)

				// Stop service
				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			setTestEnv()
			_ = os.Setenv("CLANPULSE_ADDR", "")
			defer unsetTestEnv()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should handle invalid options gracefully", func() {
				svc := app.New(
					app.WithWorkerCount(0),
					app.WithQueueSize(0),
					app.WithShardCount(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationResourceCleanup(t *testing.T) {
	convey.Convey("Given main application resource cleanup", t, func() {
		convey.Convey("When testing service creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then service should be created successfully", func() {
				// Test that we can get stats without starting
				stats := svc.GetStats()
				convey.So(stats, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing multiple service creation cycles", func() {
			convey.Convey("Then multiple services should be created successfully", func() {
				for i := 0; i < 3; i++ {
					svc := app.New()
					convey.So(svc, convey.ShouldNotBeNil)

					stats := svc.GetStats()
					convey.So(stats, convey.ShouldNotBeNil)
				}
			})
		})
	})
}
