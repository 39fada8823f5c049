// Command scout rates every player in a roster file and prints the
// leaderboard report as JSON.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/scout/internal/adapters/roster"
	app "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `scout - position-aware player ratings

Usage:
  scout -roster players.json [options]

Options:
  -roster string    roster file (.json, .yaml or .yml), required
  -config string    YAML config file (default: $SCOUT_CONFIG)
  -top int          leaderboard size, 0 lists everyone (default: top_n from config)
  -position string  only rank players submitted under this position code
  -out string       write the report to this file instead of stdout
  -metrics string   write a Prometheus text dump here (default: metrics_file from config)
  -help             show this help

Environment:
  SCOUT_LOG_LEVEL, SCOUT_LOG_FORMAT, SCOUT_WORKER_COUNT, SCOUT_QUEUE_SIZE,
  SCOUT_DEDUPE_SIZE, SCOUT_TOP_N, SCOUT_METRICS_FILE, SCOUT_METRICS_NAMESPACE,
  SCOUT_METRICS_SUBSYSTEM, SCOUT_FALLBACK_POSITION
`

type flags struct {
	roster   string
	config   string
	top      int
	position string
	out      string
	metrics  string
	help     bool
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("scout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = io.WriteString(stderr, usage) }
	fs.StringVar(&f.roster, "roster", "", "roster file")
	fs.StringVar(&f.config, "config", os.Getenv(config.FileEnv), "YAML config file")
	fs.IntVar(&f.top, "top", -1, "leaderboard size")
	fs.StringVar(&f.position, "position", "", "position filter")
	fs.StringVar(&f.out, "out", "", "report output file")
	fs.StringVar(&f.metrics, "metrics", "", "metrics text dump")
	fs.BoolVar(&f.help, "help", false, "show help")
	err := fs.Parse(args)
	return f, err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}
	if f.help {
		_, _ = io.WriteString(stdout, usage)
		return exitOK
	}
	if f.roster == "" {
		_, _ = io.WriteString(stderr, "missing -roster\n\n"+usage)
		return exitUsage
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.LoadFile(ctx, f.config)
	if err != nil {
		// logger isn't available yet
		_, _ = io.WriteString(stderr, "failed to load config: "+err.Error()+"\n")
		return exitFailure
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return exitFailure
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			_, _ = io.WriteString(stderr, "failed to sync logs: "+err.Error()+"\n")
		}
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(cfg.MetricsOptions()...)

	registry, err := cfg.Registry(ctx)
	if err != nil {
		log.Error(ctx, "invalid profile configuration", logger.Error(err))
		return exitFailure
	}

	pos := profile.ParsePosition(f.position)
	if pos != "" && !registry.Known(pos) {
		log.Warn(ctx, "position filter is not a registered code", logger.String("position", string(pos)))
	}

	players, err := roster.Load(ctx, f.roster)
	if err != nil {
		log.Error(ctx, "failed to load roster", logger.String("path", f.roster), logger.Error(err))
		return exitFailure
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithRegistry(registry),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return exitFailure
	}
	defer svc.Stop()

	if err := svc.Process(ctx, players); err != nil {
		log.Error(ctx, "batch run failed", logger.Error(err))
		return exitFailure
	}

	top := cfg.TopN
	if f.top >= 0 {
		top = f.top
	}
	report, err := svc.Report(ctx, top, pos)
	if err != nil {
		log.Error(ctx, "failed to build report", logger.Error(err))
		return exitFailure
	}

	if err := writeReport(f.out, stdout, report); err != nil {
		log.Error(ctx, "failed to write report", logger.String("path", f.out), logger.Error(err))
		return exitFailure
	}

	metricsFile := cfg.MetricsFile
	if f.metrics != "" {
		metricsFile = f.metrics
	}
	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			log.Error(ctx, "failed to write metrics", logger.String("path", metricsFile), logger.Error(err))
			return exitFailure
		}
	}

	log.Info(ctx, "run complete",
		logger.String("run_id", report.RunID),
		logger.Int("players", report.PlayersEvaluated),
		logger.Int64("duplicates", report.Duplicates),
		logger.Int64("rejected", report.Rejected),
	)
	return exitOK
}

func writeReport(path string, stdout io.Writer, report app.Report) error {
	if path == "" {
		return roster.WriteReport(stdout, report)
	}
	out, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return err
	}
	if err := roster.WriteReport(out, report); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
