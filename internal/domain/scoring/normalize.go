package scoring

import (
	"math"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/stats"
)

// Scale constants.
const (
	maxScoreValue  = 100 // normalized scores live in [0, maxScoreValue]
	ratingDivisor  = 20  // maps a [0,100] mean onto the 0-5 star scale
	maxRating      = 5
	weightedDigits = 2
	percentDigits  = 1
)

// score is the unweighted, unrounded 0-100 value of raw against m.
func score(raw float64, m profile.Metric) float64 {
	s := math.Min(raw/m.Ceiling*maxScoreValue, maxScoreValue)
	if m.Invert {
		s = maxScoreValue - s
	}
	return s
}

// Normalize scores one raw counter against m and applies its weight.
// The result is rounded to two decimals.
func Normalize(raw float64, m profile.Metric) float64 {
	return roundTo(score(raw, m)*m.Weight, weightedDigits)
}

// NormalizeStat reads m's counter from st and normalizes it.
func NormalizeStat(st stats.Raw, m profile.Metric) NormalizedMetric {
	raw := st.Value(m.Stat)
	return NormalizedMetric{
		Stat:     m.Stat,
		Label:    m.Label,
		Raw:      raw,
		Score:    roundTo(score(raw, m), weightedDigits),
		Weighted: Normalize(raw, m),
	}
}

// ratingOf is the weighted mean of the radar scores on the 0-5 scale.
// Weights are summed unrounded.
func ratingOf(st stats.Raw, p profile.Profile) float64 {
	var weighted, totalWeight float64
	for _, m := range p.Radar {
		weighted += score(st.Value(m.Stat), m) * m.Weight
		totalWeight += m.Weight
	}
	if totalWeight <= 0 {
		return 0
	}

	r := weighted / totalWeight / ratingDivisor
	if math.IsNaN(r) {
		return 0
	}
	return math.Min(math.Max(r, 0), maxRating)
}

// Stars rounds a rating to the nearest half star.
func Stars(rating float64) float64 {
	return math.Round(rating*2) / 2
}

func roundTo(x float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(x*p) / p
}
