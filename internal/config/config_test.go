package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 0)
			convey.So(cfg.TopN, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with out-of-range values", t, func() {
		cases := map[string]func(*config.Config){
			"zero workers":     func(c *config.Config) { c.WorkerCount = 0 },
			"zero queue":       func(c *config.Config) { c.QueueSize = 0 },
			"negative dedupe":  func(c *config.Config) { c.DedupeSize = -1 },
			"negative top":     func(c *config.Config) { c.TopN = -5 },
			"unknown format":   func(c *config.Config) { c.LogFormat = "xml" },
			"unsorted buckets": func(c *config.Config) { c.MetricsRatingBuckets = []float64{1, 3, 2} },
			"repeated buckets": func(c *config.Config) { c.MetricsLatencyBuckets = []float64{5, 5} },
		}
		for name, mutate := range cases {
			convey.Convey("When validating with "+name, func() {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}

func TestConfig_Registry(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		ctx := context.Background()

		convey.Convey("When nothing is customized", func() {
			r, err := config.New().Registry(ctx)

			convey.Convey("Then the built-in registry is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Positions(), convey.ShouldResemble, profile.Default().Positions())
			})
		})

		convey.Convey("When a profile, an alias and a fallback are set", func() {
			cfg := config.New()
			cfg.Profiles = map[string]profile.Profile{"wb": profile.Resolve(profile.CentreBack)}
			cfg.Aliases = map[string]string{"ala": "wb"}
			cfg.FallbackPosition = "mei"
			r, err := cfg.Registry(ctx)

			convey.Convey("Then codes are normalized and registered", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Known("WB"), convey.ShouldBeTrue)
				convey.So(r.Known("ALA"), convey.ShouldBeTrue)
				convey.So(r.Fallback(), convey.ShouldEqual, profile.AttackingMidfielder)
				convey.So(r.Resolve("ALA"), convey.ShouldResemble, profile.Resolve(profile.CentreBack))
			})
		})

		convey.Convey("When the fallback is unknown", func() {
			cfg := config.New()
			cfg.FallbackPosition = "nope"
			r, err := cfg.Registry(ctx)

			convey.Convey("Then it fails as an invalid config", func() {
				convey.So(r, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, profile.ErrUnknownFallback), convey.ShouldBeTrue)
			})
		})
	})
}
