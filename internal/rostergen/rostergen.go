// Package rostergen generates synthetic, position-plausible player rosters
// for load tests and demos.
package rostergen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

const (
	defaultWorkers = 8
	maxPlayers     = 1_000_000
)

// ErrInvalidConfig is returned for a malformed generator configuration.
var ErrInvalidConfig = errors.New("invalid generator config")

// namespace seeds the deterministic player ids.
var namespace = uuid.MustParse("6f1c2a4e-3b1d-4c7a-9f5e-2d8b0a6c4e11") //nolint:gochecknoglobals // constant uuid

// Config holds generator settings.
type Config struct {
	Players   int
	Seed      uint64
	Workers   int
	Positions []profile.Position // empty means the full picker order
	Teams     []string
}

// Generate builds cfg.Players records. The output depends only on cfg, not
// on how the work was scheduled.
func Generate(ctx context.Context, cfg Config) ([]model.PlayerRecord, error) {
	if cfg.Players < 0 || cfg.Players > maxPlayers {
		return nil, fmt.Errorf("%w: players must be in [0, %d], got %d", ErrInvalidConfig, maxPlayers, cfg.Players)
	}
	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers
	}
	if len(cfg.Positions) == 0 {
		cfg.Positions = profile.Default().Positions()
	}
	if len(cfg.Teams) == 0 {
		cfg.Teams = defaultTeams
	}

	log := logger.Get().Named("rostergen")
	log.Info(ctx, "generating roster",
		logger.Int("players", cfg.Players),
		logger.Int("workers", cfg.Workers),
		logger.Int64("seed", int64(cfg.Seed)), //nolint:gosec // display only
	)

	out := make([]model.PlayerRecord, cfg.Players)
	if cfg.Players == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(min(cfg.Workers, cfg.Players))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range out {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			// Each slot is written by exactly one task.
			out[i] = generateOne(cfg, i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	metrics.RecordRosterGenerated(len(out))
	log.Info(ctx, "roster generated", logger.Int("count", len(out)))
	return out, nil
}

func generateOne(cfg Config, i int) model.PlayerRecord {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i))) //nolint:gosec // synthetic data

	pos := cfg.Positions[rng.IntN(len(cfg.Positions))]
	return model.PlayerRecord{
		PlayerID: uuid.NewSHA1(namespace, []byte(strconv.FormatUint(cfg.Seed, 10)+":"+strconv.Itoa(i))).String(),
		Name:     firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
		Team:     cfg.Teams[rng.IntN(len(cfg.Teams))],
		Position: pos,
		Stats:    statsFor(rng, pos),
	}
}
