package service

import (
	"context"
	"time"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/types"
)

// Report is the outcome of a batch run.
type Report struct {
	RunID            string                        `json:"run_id"`
	GeneratedAt      time.Time                     `json:"generated_at"`
	PlayersEvaluated int                           `json:"players_evaluated"`
	Duplicates       int64                         `json:"duplicates"`
	Rejected         int64                         `json:"rejected"`
	Position         profile.Position              `json:"position,omitempty"`
	Leaderboard      []types.Entry                 `json:"leaderboard"`
	Evaluations      map[string]scoring.Evaluation `json:"evaluations"`
}

// Report builds the leaderboard of the run. n <= 0 lists every player; a
// non-empty pos keeps only players submitted under that code.
func (s *Service) Report(ctx context.Context, n int, pos profile.Position) (Report, error) {
	s.mu.RLock()
	board := s.board
	rep := Report{
		RunID:       s.runID,
		GeneratedAt: s.now().UTC(),
		Duplicates:  s.duplicates.Load(),
		Rejected:    s.rejected.Load(),
		Position:    profile.ParsePosition(string(pos)),
		Leaderboard: []types.Entry{},
		Evaluations: map[string]scoring.Evaluation{},
	}
	s.mu.RUnlock()

	if board == nil {
		return Report{}, ErrNotStarted
	}

	rep.PlayersEvaluated = board.Count(ctx)
	if rep.PlayersEvaluated == 0 {
		return rep, nil
	}
	if n <= 0 {
		n = rep.PlayersEvaluated
	}

	var (
		entries []types.Entry
		err     error
	)
	if rep.Position != "" {
		entries, err = board.TopByPosition(ctx, rep.Position, n)
	} else {
		entries, err = board.TopN(ctx, n)
	}
	if err != nil {
		return Report{}, err
	}
	rep.Leaderboard = entries

	for _, e := range entries {
		if ev, ok := s.Evaluation(e.PlayerID); ok {
			rep.Evaluations[e.PlayerID] = ev
		}
	}
	return rep, nil
}
