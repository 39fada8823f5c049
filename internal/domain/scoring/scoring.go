// Package scoring turns a player's raw counters and position into a rating,
// completion ratios and the normalized series shown on the player panels.
//
// Everything here is pure and synchronous. An Engine only reads its
// registry, so a single Engine can serve any number of goroutines.
package scoring

import (
	"strconv"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/stats"
)

// NormalizedMetric is one radar point.
type NormalizedMetric struct {
	Stat     stats.Key `json:"stat"`
	Label    string    `json:"label"`
	Raw      float64   `json:"raw"`
	Score    float64   `json:"score"`    // 0-100 before weighting
	Weighted float64   `json:"weighted"` // score * weight, two decimals
}

// DisplayLabel renders the label with the raw count, e.g. "Gols (20)".
func (m NormalizedMetric) DisplayLabel() string {
	return m.Label + " (" + strconv.FormatFloat(m.Raw, 'f', -1, 64) + ")"
}

// Slice is one pie or bar entry.
type Slice struct {
	Label string       `json:"label"`
	Value float64      `json:"value"`
	Tone  profile.Tone `json:"tone"`
}

// Evaluation is the full derived view for one player.
type Evaluation struct {
	Position         profile.Position   `json:"position"`
	Rating           float64            `json:"rating"`
	Stars            float64            `json:"stars"`
	PassPrecisionPct float64            `json:"pass_precision_pct"`
	ShotPrecisionPct float64            `json:"shot_precision_pct"`
	Goalkeeper       bool               `json:"goalkeeper"`
	Radar            []NormalizedMetric `json:"radar"`
	Pie              []Slice            `json:"pie"`
	Bar              []Slice            `json:"bar"`
	BarTitle         string             `json:"bar_title"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRegistry scores against r instead of the default registry.
func WithRegistry(r *profile.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// Engine evaluates players against a profile registry.
type Engine struct {
	registry *profile.Registry
}

// NewEngine creates an engine over the default registry unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{registry: profile.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine() //nolint:gochecknoglobals // stateless, read-only

// Rating scores st on the default registry.
func Rating(st stats.Raw, code profile.Position) float64 {
	return defaultEngine.Rating(st, code)
}

// Evaluate runs the full evaluation on the default registry.
func Evaluate(st stats.Raw, code profile.Position) Evaluation {
	return defaultEngine.Evaluate(st, code)
}

// Registry returns the registry the engine scores against.
func (e *Engine) Registry() *profile.Registry { return e.registry }

// Rating is the 0-5 weighted mean of the radar metrics for code's profile.
func (e *Engine) Rating(st stats.Raw, code profile.Position) float64 {
	return ratingOf(st, e.registry.Resolve(code))
}

// Evaluate scores st for code. The rating and radar always follow the
// registry entry for code. Pie and bar panels switch to the goalkeeper
// profile whenever IsGoalkeeper says so.
func (e *Engine) Evaluate(st stats.Raw, code profile.Position) Evaluation {
	p := e.registry.Resolve(code)
	rating := ratingOf(st, p)

	ev := Evaluation{
		Position:         code,
		Rating:           rating,
		Stars:            Stars(rating),
		PassPrecisionPct: PassPrecision(st),
		ShotPrecisionPct: ShotPrecision(st),
		Goalkeeper:       IsGoalkeeper(st, code),
		Radar:            make([]NormalizedMetric, 0, len(p.Radar)),
	}
	for _, m := range p.Radar {
		ev.Radar = append(ev.Radar, NormalizeStat(st, m))
	}

	display := p
	if ev.Goalkeeper && code != profile.Goalkeeper {
		display = e.registry.Resolve(profile.Goalkeeper)
	}
	ev.Pie = seriesValues(st, display.Pie)
	ev.Bar = seriesValues(st, display.Bar)
	ev.BarTitle = display.BarTitle
	return ev
}

func seriesValues(st stats.Raw, series []profile.Series) []Slice {
	out := make([]Slice, 0, len(series))
	for _, s := range series {
		out = append(out, Slice{Label: s.Label, Value: st.Value(s.Stat), Tone: s.Tone})
	}
	return out
}
