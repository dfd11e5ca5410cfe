package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/clanpulse/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with required secrets only", func() {
			clearConfigEnvVars()
			setRequiredEnvVars()
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TopN, convey.ShouldEqual, 25)
				convey.So(cfg.PollIntervalSeconds, convey.ShouldEqual, 60)
				convey.So(cfg.DayOffsetMinutes, convey.ShouldEqual, -300)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.ClanTag, convey.ShouldEqual, "#TESTCLAN")
			})
		})

		convey.Convey("When loading config with environment overrides", func() {
			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_ADDR", ":8080")
			_ = os.Setenv("CLANPULSE_TOP_N", "10")
			_ = os.Setenv("CLANPULSE_POLL_INTERVAL_SECONDS", "30")
			_ = os.Setenv("CLANPULSE_DAY_OFFSET_MINUTES", "0")
			_ = os.Setenv("CLANPULSE_DELIVERY_WORKERS", "4")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.PollIntervalSeconds, convey.ShouldEqual, 30)
				convey.So(cfg.DayOffsetMinutes, convey.ShouldEqual, 0)
				convey.So(cfg.DeliveryWorkers, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
clan_tag: "#FILECLAN"
api_token: "file-token"
discord_token: "file-discord"
discord_channel_id: "1234"
top_n: 15
day_offset_minutes: 120
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CLANPULSE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ClanTag, convey.ShouldEqual, "#FILECLAN")
				convey.So(cfg.TopN, convey.ShouldEqual, 15)
				convey.So(cfg.DayOffsetMinutes, convey.ShouldEqual, 120)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
clan_tag: "#FILECLAN"
api_token: "file-token"
discord_token: "file-discord"
discord_channel_id: "1234"
top_n: 15
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CLANPULSE_CONFIG", tmpFile)
			_ = os.Setenv("CLANPULSE_ADDR", ":8080")       // This should override the file
			_ = os.Setenv("CLANPULSE_CLAN_TAG", "#ENVCLAN") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")       // Overridden by env
				convey.So(cfg.ClanTag, convey.ShouldEqual, "#ENVCLAN") // Overridden by env
				convey.So(cfg.TopN, convey.ShouldEqual, 15)            // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a required secret is missing", func() {
			clearConfigEnvVars()
			_ = os.Setenv("CLANPULSE_CLAN_TAG", "#TESTCLAN")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "api_token")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the poll interval is not positive", func() {
			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_POLL_INTERVAL_SECONDS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "poll_interval_seconds")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the boundary check interval is not positive", func() {
			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_BOUNDARY_CHECK_SECONDS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "boundary_check_seconds")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the delivery worker count is not positive", func() {
			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_DELIVERY_WORKERS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "delivery_workers")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			setRequiredEnvVars()
			_ = os.Setenv("CLANPULSE_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func setRequiredEnvVars() {
	_ = os.Setenv("CLANPULSE_API_TOKEN", "test-token")
	_ = os.Setenv("CLANPULSE_CLAN_TAG", "#TESTCLAN")
	_ = os.Setenv("CLANPULSE_DISCORD_TOKEN", "test-discord-token")
	_ = os.Setenv("CLANPULSE_DISCORD_CHANNEL_ID", "42")
}

func clearConfigEnvVars() {
	envVars := []string{
		"CLANPULSE_CONFIG",
		"CLANPULSE_ADDR",
		"CLANPULSE_API_TOKEN",
		"CLANPULSE_CLAN_TAG",
		"CLANPULSE_DISCORD_TOKEN",
		"CLANPULSE_DISCORD_CHANNEL_ID",
		"CLANPULSE_TOP_N",
		"CLANPULSE_POLL_INTERVAL_SECONDS",
		"CLANPULSE_BOUNDARY_CHECK_SECONDS",
		"CLANPULSE_DAY_OFFSET_MINUTES",
		"CLANPULSE_DELIVERY_WORKERS",
		"CLANPULSE_QUEUE_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "clanpulse-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
