// Package repository holds the rating board: every evaluated player of a
// run, ordered by rating.
package repository

import (
	"context"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/types"
)

// Entry represents a rating board row.
type Entry = types.Entry

// Store provides read/write access to the rating board.
type Store interface {
	// Upsert stores e, replacing any previous row for e.PlayerID.
	// Returns true if the player was not on the board before.
	Upsert(ctx context.Context, e Entry) (bool, error)

	// Get returns the row and current rank for a player.
	// Returns ErrNotFound if the player is unknown.
	Get(ctx context.Context, playerID string) (Entry, error)

	// TopN returns the top-N rows ordered by rating desc, player id asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// TopByPosition is TopN restricted to one submitted position code.
	// Ranks stay global.
	TopByPosition(ctx context.Context, pos profile.Position, n int) ([]Entry, error)

	// Count returns the number of players on the board.
	Count(ctx context.Context) int
}
