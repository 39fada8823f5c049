package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/stats"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCOUT_QUEUE_SIZE", "500")
			_ = os.Setenv("SCOUT_WORKER_COUNT", "3")
			_ = os.Setenv("SCOUT_DEDUPE_SIZE", "250")
			_ = os.Setenv("SCOUT_TOP_N", "10")
			_ = os.Setenv("SCOUT_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 250)
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
# run settings
queue_size: 300
worker_count: 4
top_n: 25
metrics_file: /tmp/scout.prom  # dump target
fallback_position: mei
aliases:
  ala: lat
metrics_namespace: club
metrics_const_labels:
  season: "2026"
metrics_latency_buckets: [1, 5, 25]
`)
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.TopN, convey.ShouldEqual, 25)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/scout.prom")
				convey.So(cfg.Aliases, convey.ShouldResemble, map[string]string{"ala": "lat"})
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info") // from defaults
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "club")
				convey.So(cfg.MetricsConstLabels, convey.ShouldResemble, map[string]string{"season": "2026"})
				convey.So(cfg.MetricsLatencyBuckets, convey.ShouldResemble, []float64{1, 5, 25})
				convey.So(len(cfg.MetricsOptions()), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "queue_size: 300\nworker_count: 4\n")
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			_ = os.Setenv("SCOUT_WORKER_COUNT", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When the YAML file defines a custom profile", func() {
			tmpFile := createTempConfigFile(t, `
profiles:
  wb:
    bar_title: Cruzamentos
    radar:
      - {stat: assists, label: Assistências, ceiling: 10, weight: 2}
      - {stat: interceptions, label: Interceptações, ceiling: 40, weight: 1}
    pie:
      - {stat: correct_passes, label: Certos, tone: success}
      - {stat: incorrect_passes, label: Errados, tone: error}
`)
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			r, err := cfg.Registry(ctx)

			convey.Convey("Then the registry scores the new position with it", func() {
				convey.So(err, convey.ShouldBeNil)
				p := r.Resolve("WB")
				convey.So(p.BarTitle, convey.ShouldEqual, "Cruzamentos")
				convey.So(len(p.Radar), convey.ShouldEqual, 2)
				convey.So(p.Radar[0].Stat, convey.ShouldEqual, stats.Assists)
				convey.So(p.Radar[0].Weight, convey.ShouldEqual, 2.0)
				convey.So(p.Pie[1].Tone, convey.ShouldEqual, profile.ToneError)
			})
		})

		convey.Convey("When a custom profile has an infinite weight", func() {
			tmpFile := createTempConfigFile(t, `
profiles:
  wb:
    radar:
      - {stat: assists, label: Assistências, ceiling: 10, weight: .inf}
`)
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			r, err := cfg.Registry(ctx)

			convey.Convey("Then building the registry fails", func() {
				convey.So(r, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, profile.ErrInvalidProfile), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCOUT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SCOUT_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with zero workers", func() {
			_ = os.Setenv("SCOUT_WORKER_COUNT", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	convey.Convey("Given an explicit config path", t, func() {
		clearConfigEnvVars()
		path := createTempConfigFile(t, "log_level: debug\n")

		cfg, err := config.LoadFile(context.Background(), path)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SCOUT_CONFIG",
		"SCOUT_LOG_LEVEL",
		"SCOUT_LOG_FORMAT",
		"SCOUT_QUEUE_SIZE",
		"SCOUT_WORKER_COUNT",
		"SCOUT_DEDUPE_SIZE",
		"SCOUT_TOP_N",
		"SCOUT_METRICS_FILE",
		"SCOUT_FALLBACK_POSITION",
		"SCOUT_METRICS_NAMESPACE",
		"SCOUT_METRICS_SUBSYSTEM",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scout-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
