// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/stats"
)

// PlayerRecord is one player's season row as supplied by the stats store.
type PlayerRecord struct {
	PlayerID string           `json:"player_id" koanf:"player_id" validate:"required"` // unique id for idempotency
	Name     string           `json:"name" koanf:"name"`
	Team     string           `json:"team,omitempty" koanf:"team"`
	Position profile.Position `json:"position" koanf:"position"` // nominal position code, e.g. "ATA"
	Stats    stats.Raw        `json:"stats" koanf:"stats"`
}

// Normalized returns a copy with trimmed identifiers and a canonical
// position code.
func (r PlayerRecord) Normalized() PlayerRecord {
	r.PlayerID = strings.TrimSpace(r.PlayerID)
	r.Name = strings.TrimSpace(r.Name)
	r.Team = strings.TrimSpace(r.Team)
	r.Position = profile.ParsePosition(string(r.Position))
	return r
}

// ErrInvalidRecord is returned by Validate.
var ErrInvalidRecord = errors.New("invalid player record")

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validator caches struct metadata

// Validate checks the record has an id and no negative counters.
func (r PlayerRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRecord, r.PlayerID, err)
	}
	return nil
}
