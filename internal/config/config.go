// Package config defines process configuration for the scout tools and the
// layered loader that fills it.
package config

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory intake queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize caps the duplicate-id cache; zero keeps every id.
	DedupeSize int `koanf:"dedupe_size"`

	// TopN limits the leaderboard in reports; zero lists everyone.
	TopN int `koanf:"top_n"`

	// MetricsFile, when set, receives a Prometheus text dump after a run.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsConstLabels are attached to every metric, e.g. {club: ...}.
	MetricsConstLabels map[string]string `koanf:"metrics_const_labels"`

	// MetricsLatencyBuckets and MetricsRatingBuckets override histogram
	// buckets. Values must be strictly increasing.
	MetricsLatencyBuckets []float64 `koanf:"metrics_latency_buckets"`
	MetricsRatingBuckets  []float64 `koanf:"metrics_rating_buckets"`

	// FallbackPosition is used for unknown position codes.
	FallbackPosition string `koanf:"fallback_position"`

	// Profiles adds or replaces position profiles by code.
	Profiles map[string]profile.Profile `koanf:"profiles"`

	// Aliases maps extra position codes onto registered ones.
	Aliases map[string]string `koanf:"aliases"`
}

// New creates a Config holding the built-in defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		WorkerCount: runtime.NumCPU(),
		QueueSize:   10_000,
		DedupeSize:  0,
		TopN:        0,
	}
}

// Validate checks numeric bounds and names.
func (c *Config) Validate() error {
	switch {
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be at least 1, got %d", ErrInvalidConfig, c.QueueSize)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	case c.TopN < 0:
		return fmt.Errorf("%w: top_n must not be negative, got %d", ErrInvalidConfig, c.TopN)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if err := checkBuckets("metrics_latency_buckets", c.MetricsLatencyBuckets); err != nil {
		return err
	}
	return checkBuckets("metrics_rating_buckets", c.MetricsRatingBuckets)
}

// MetricsOptions maps the metrics keys onto metrics manager options.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(c.MetricsNamespace),
		metrics.WithSubsystem(c.MetricsSubsystem),
		metrics.WithConstLabels(c.MetricsConstLabels),
		metrics.WithHistogramBuckets(c.MetricsLatencyBuckets),
		metrics.WithRatingBuckets(c.MetricsRatingBuckets),
	}
}

func checkBuckets(key string, buckets []float64) error {
	for i, b := range buckets {
		if math.IsNaN(b) || (i > 0 && b <= buckets[i-1]) {
			return fmt.Errorf("%w: %s must be strictly increasing, got %v", ErrInvalidConfig, key, buckets)
		}
	}
	return nil
}

// Registry builds the profile registry from the built-in table plus any
// configured profiles, aliases and fallback.
func (c *Config) Registry(_ context.Context) (*profile.Registry, error) {
	if len(c.Profiles) == 0 && len(c.Aliases) == 0 && c.FallbackPosition == "" {
		return profile.Default(), nil
	}

	var opts []profile.Option
	for _, code := range sortedKeys(c.Profiles) {
		opts = append(opts, profile.WithProfile(profile.ParsePosition(code), c.Profiles[code]))
	}
	for _, alias := range sortedKeys(c.Aliases) {
		opts = append(opts, profile.WithAlias(profile.ParsePosition(alias), profile.ParsePosition(c.Aliases[alias])))
	}
	if c.FallbackPosition != "" {
		opts = append(opts, profile.WithFallback(profile.ParsePosition(c.FallbackPosition)))
	}

	r, err := profile.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
