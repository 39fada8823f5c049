// Package profile holds the position-to-metric configuration table used to
// score players.
//
// A Registry is built once and never mutated afterwards. Lookups hand out
// deep copies, so a caller that edits the profile it received cannot affect
// any other caller or any aliased position.
package profile

import (
	"strings"

	"github.com/okian/scout/internal/domain/stats"
)

// Position is a field position code as stored on player records.
type Position string

// Position codes.
const (
	Goalkeeper          Position = "GOL"
	FullBack            Position = "LAT"
	CentreBack          Position = "ZAG"
	HoldingMidfielder   Position = "VOL"
	AttackingMidfielder Position = "MEI"
	LeftWinger          Position = "PE"
	RightWinger         Position = "PD"
	SecondStriker       Position = "SA"
	Forward             Position = "ATA"
)

// displayOrder is the order positions are listed in pickers and reports.
var displayOrder = []Position{
	Goalkeeper, FullBack, CentreBack, HoldingMidfielder, AttackingMidfielder,
	LeftWinger, RightWinger, SecondStriker, Forward,
}

// ParsePosition normalizes free-form input (case, surrounding spaces) into a
// Position. It does not check that the code is registered.
func ParsePosition(s string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(s)))
}

// Tone marks a display series entry as a positive or negative outcome.
type Tone string

// Tones.
const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Metric describes how one raw counter is normalized and weighted.
type Metric struct {
	Stat    stats.Key `json:"stat" koanf:"stat" validate:"statkey"`
	Label   string    `json:"label" koanf:"label" validate:"required"`
	Ceiling float64   `json:"ceiling" koanf:"ceiling" validate:"finite,gt=0"`
	Weight  float64   `json:"weight" koanf:"weight" validate:"finite,gt=0"`
	// Invert flips the score for counters where lower is better.
	Invert bool `json:"invert,omitempty" koanf:"invert"`
}

// Series is a raw counter shown as-is on a pie or bar chart.
type Series struct {
	Stat  stats.Key `json:"stat" koanf:"stat" validate:"statkey"`
	Label string    `json:"label" koanf:"label" validate:"required"`
	Tone  Tone      `json:"tone" koanf:"tone" validate:"oneof=success error"`
}

// Profile is the full metric configuration for one position.
type Profile struct {
	Radar    []Metric `json:"radar" koanf:"radar" validate:"min=1,dive"`
	Pie      []Series `json:"pie" koanf:"pie" validate:"dive"`
	Bar      []Series `json:"bar" koanf:"bar" validate:"dive"`
	BarTitle string   `json:"bar_title" koanf:"bar_title"`
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	out := Profile{BarTitle: p.BarTitle}
	if p.Radar != nil {
		out.Radar = append(make([]Metric, 0, len(p.Radar)), p.Radar...)
	}
	if p.Pie != nil {
		out.Pie = append(make([]Series, 0, len(p.Pie)), p.Pie...)
	}
	if p.Bar != nil {
		out.Bar = append(make([]Series, 0, len(p.Bar)), p.Bar...)
	}
	return out
}

// TotalWeight sums the radar weights.
func (p Profile) TotalWeight() float64 {
	var total float64
	for _, m := range p.Radar {
		total += m.Weight
	}
	return total
}
