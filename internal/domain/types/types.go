// Package types contains common types used across the application
package types

import "github.com/okian/scout/internal/domain/profile"

// Entry represents a rating board row
type Entry struct {
	Rank             int              `json:"rank"`
	PlayerID         string           `json:"player_id"`
	Name             string           `json:"name"`
	Team             string           `json:"team,omitempty"`
	Position         profile.Position `json:"position"`
	Rating           float64          `json:"rating"`
	Stars            float64          `json:"stars"`
	PassPrecisionPct float64          `json:"pass_precision_pct"`
	ShotPrecisionPct float64          `json:"shot_precision_pct"`
	Goalkeeper       bool             `json:"goalkeeper"`
}

// Less reports whether e ranks ahead of o: higher rating first, then
// player id ascending.
func (e Entry) Less(o Entry) bool {
	if e.Rating != o.Rating {
		return e.Rating > o.Rating
	}
	return e.PlayerID < o.PlayerID
}
