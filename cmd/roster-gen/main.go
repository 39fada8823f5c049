// Command roster-gen writes a synthetic roster for load tests and demos.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/scout/internal/adapters/roster"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/rostergen"
	"github.com/okian/scout/pkg/logger"
)

const usage = `roster-gen - synthetic player rosters

Usage:
  roster-gen [options]

Options:
  -players int       number of players (default 100)
  -seed uint         generator seed; equal seeds give equal rosters (default 1)
  -workers int       generator goroutines (default 8)
  -positions string  comma-separated position codes (default: every built-in code)
  -output string     output file, .json/.yaml/.yml (default: JSON on stdout)
  -help              show this help
`

var errUnknownPosition = errors.New("unknown position code")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		players   int
		seed      uint64
		workers   int
		positions string
		output    string
		help      bool
	)
	fs := flag.NewFlagSet("roster-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = io.WriteString(stderr, usage) }
	fs.IntVar(&players, "players", 100, "number of players")
	fs.Uint64Var(&seed, "seed", 1, "generator seed")
	fs.IntVar(&workers, "workers", 8, "generator goroutines")
	fs.StringVar(&positions, "positions", "", "comma-separated position codes")
	fs.StringVar(&output, "output", "", "output file")
	fs.BoolVar(&help, "help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if help {
		_, _ = io.WriteString(stdout, usage)
		return 0
	}

	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}
	log := logger.Get()

	codes, err := parsePositions(positions)
	if err != nil {
		log.Error(ctx, "invalid -positions", logger.Error(err))
		return 2
	}

	records, err := rostergen.Generate(ctx, rostergen.Config{
		Players:   players,
		Seed:      seed,
		Workers:   workers,
		Positions: codes,
	})
	if err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		return 1
	}

	if output == "" {
		err = roster.Encode(stdout, roster.FormatJSON, records)
	} else {
		err = roster.Save(output, records)
	}
	if err != nil {
		log.Error(ctx, "failed to write roster", logger.String("output", output), logger.Error(err))
		return 1
	}
	return 0
}

// parsePositions splits a comma list and checks each code against the
// built-in registry.
func parsePositions(s string) ([]profile.Position, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	registry := profile.Default()
	var out []profile.Position
	for _, part := range strings.Split(s, ",") {
		code := profile.ParsePosition(part)
		if code == "" {
			continue
		}
		if !registry.Known(code) {
			return nil, fmt.Errorf("%w: %s", errUnknownPosition, code)
		}
		out = append(out, code)
	}
	return out, nil
}
