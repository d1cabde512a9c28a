package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-cricket-metrics/internal/config"
)

func TestConfigLoader(t *testing.T) {
	// .env lookup is relative to the working directory.
	t.Chdir(t.TempDir())

	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
				convey.So(cfg.MinSupport, convey.ShouldEqual, 0.05)
				convey.So(cfg.MinConfidence, convey.ShouldEqual, 0.6)
				convey.So(cfg.MaxRules, convey.ShouldEqual, 20)
				convey.So(cfg.MinBallsFaced, convey.ShouldEqual, 100)
				convey.So(cfg.DBPath, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CRICMETRICS_ADDR", ":8080")
			_ = os.Setenv("CRICMETRICS_MIN_SUPPORT", "0.1")
			_ = os.Setenv("CRICMETRICS_MIN_BALLS_FACED", "60")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinSupport, convey.ShouldEqual, 0.1)
				convey.So(cfg.MinBallsFaced, convey.ShouldEqual, 60)
				convey.So(cfg.MaxRules, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
db_path: "/tmp/cricket.db"
min_confidence: 0.8
max_rules: 5
`)
			_ = os.Setenv("CRICMETRICS_CONFIG", tmpFile)
			_ = os.Setenv("CRICMETRICS_MAX_RULES", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/cricket.db")
				convey.So(cfg.MinConfidence, convey.ShouldEqual, 0.8)
				convey.So(cfg.MaxRules, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When a .env file is present", func() {
			_ = os.WriteFile(".env", []byte("CRICMETRICS_ADDR=:7070\n"), 0o644)
			defer func() { _ = os.Remove(".env") }()
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When a threshold is out of range", func() {
			_ = os.Setenv("CRICMETRICS_MIN_SUPPORT", "1.5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When max_rules is zero or above the cap", func() {
			defer clearConfigEnvVars()

			convey.Convey("Then loading fails with ErrInvalidConfig", func() {
				for _, v := range []string{"0", "21"} {
					_ = os.Setenv("CRICMETRICS_MAX_RULES", v)
					_, err := config.Load(ctx)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the log level is unknown", func() {
			_ = os.Setenv("CRICMETRICS_LOG_LEVEL", "chatty")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("CRICMETRICS_CONFIG", "/nonexistent/cricmetrics.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"CRICMETRICS_CONFIG", "CRICMETRICS_ADDR", "CRICMETRICS_LOG_LEVEL",
		"CRICMETRICS_MATCHES_PATH", "CRICMETRICS_DELIVERIES_PATH", "CRICMETRICS_DB_PATH",
		"CRICMETRICS_MIN_SUPPORT", "CRICMETRICS_MIN_CONFIDENCE", "CRICMETRICS_MAX_RULES",
		"CRICMETRICS_MIN_BALLS_FACED",
	} {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cricmetrics.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
