package rostergen

import (
	"math/rand/v2"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/stats"
)

// Performance tiers scale the season counters.
const (
	tierLow     = 0.45
	tierAverage = 0.75
	tierGood    = 1.0
	tierElite   = 1.3
)

// tier draws a multiplier: mostly average, elite is rare.
func tier(rng *rand.Rand) float64 {
	switch n := rng.IntN(10); {
	case n < 2:
		return tierLow
	case n < 7:
		return tierAverage
	case n < 9:
		return tierGood
	default:
		return tierElite
	}
}

// band holds the typical season range of one counter for a role.
type band struct{ lo, hi int }

func (b band) draw(rng *rand.Rand, scale float64) int {
	if b.hi <= b.lo {
		return b.lo
	}
	v := float64(b.lo+rng.IntN(b.hi-b.lo+1)) * scale
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}

type role struct {
	goals, assists, yellow, red band
	passes, passAccuracyPct     band
	shots, shotAccuracyPct      band
	interceptions, dribbles     band
	keeper                      bool
}

var roles = map[profile.Position]role{ //nolint:gochecknoglobals // static tables
	profile.Goalkeeper: {
		yellow: band{0, 3}, red: band{0, 1},
		passes: band{300, 700}, passAccuracyPct: band{60, 85},
		keeper: true,
	},
	profile.CentreBack: {
		goals: band{0, 4}, assists: band{0, 3}, yellow: band{2, 10}, red: band{0, 2},
		passes: band{500, 1200}, passAccuracyPct: band{78, 92},
		shots: band{3, 15}, shotAccuracyPct: band{20, 45},
		interceptions: band{40, 110}, dribbles: band{2, 15},
	},
	profile.FullBack: {
		goals: band{0, 4}, assists: band{1, 8}, yellow: band{2, 9}, red: band{0, 1},
		passes: band{500, 1100}, passAccuracyPct: band{75, 88},
		shots: band{5, 20}, shotAccuracyPct: band{20, 45},
		interceptions: band{30, 80}, dribbles: band{10, 40},
	},
	profile.HoldingMidfielder: {
		goals: band{0, 5}, assists: band{1, 8}, yellow: band{3, 12}, red: band{0, 1},
		passes: band{700, 1500}, passAccuracyPct: band{80, 92},
		shots: band{8, 30}, shotAccuracyPct: band{25, 45},
		interceptions: band{35, 90}, dribbles: band{10, 35},
	},
	profile.AttackingMidfielder: {
		goals: band{3, 12}, assists: band{4, 18}, yellow: band{1, 7}, red: band{0, 1},
		passes: band{600, 1300}, passAccuracyPct: band{75, 88},
		shots: band{25, 70}, shotAccuracyPct: band{30, 50},
		interceptions: band{10, 40}, dribbles: band{25, 70},
	},
	profile.Forward: {
		goals: band{6, 30}, assists: band{2, 12}, yellow: band{1, 6}, red: band{0, 1},
		passes: band{250, 700}, passAccuracyPct: band{65, 82},
		shots: band{40, 120}, shotAccuracyPct: band{35, 55},
		interceptions: band{3, 20}, dribbles: band{20, 80},
	},
}

// roleOf maps aliases and unknown codes onto a stat table.
func roleOf(pos profile.Position) role {
	if r, ok := roles[pos]; ok {
		return r
	}
	switch pos {
	case profile.LeftWinger, profile.RightWinger:
		r := roles[profile.Forward]
		r.goals, r.assists, r.dribbles = band{4, 16}, band{4, 14}, band{35, 90}
		return r
	case profile.SecondStriker:
		r := roles[profile.Forward]
		r.goals, r.assists = band{5, 20}, band{4, 14}
		return r
	default:
		return roles[profile.Forward]
	}
}

func statsFor(rng *rand.Rand, pos profile.Position) stats.Raw {
	r := roleOf(pos)
	scale := tier(rng)
	matches := band{12, 38}.draw(rng, 1)
	// Counters grow with minutes on the pitch.
	season := scale * float64(matches) / 38

	passes := r.passes.draw(rng, season)
	accuracy := min(r.passAccuracyPct.draw(rng, 1), 100)
	correct := passes * accuracy / 100
	shots := r.shots.draw(rng, season)
	onTarget := shots * min(r.shotAccuracyPct.draw(rng, 1), 100) / 100

	st := stats.Raw{
		MatchesPlayed:     matches,
		Goals:             min(r.goals.draw(rng, season), onTarget+r.goals.lo),
		Assists:           r.assists.draw(rng, season),
		YellowCards:       r.yellow.draw(rng, 1),
		RedCards:          r.red.draw(rng, 1),
		CorrectPasses:     correct,
		IncorrectPasses:   passes - correct,
		SuccessfulShots:   onTarget,
		UnsuccessfulShots: shots - onTarget,
		Interceptions:     r.interceptions.draw(rng, season),
		Dribbles:          r.dribbles.draw(rng, season),
	}

	if r.keeper {
		st.Saves = band{60, 150}.draw(rng, season)
		st.GoalsConceded = band{15, 55}.draw(rng, float64(matches)/38/scale)
		st.CleanSheets = band{2, 18}.draw(rng, season)
		st.PenaltiesFaced = band{1, 8}.draw(rng, 1)
		st.PenaltiesSaved = min(band{0, 4}.draw(rng, scale), st.PenaltiesFaced)
		st.HighClaims = band{10, 60}.draw(rng, season)
	}
	return st
}
