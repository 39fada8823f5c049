package scoring

import (
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/stats"
)

// PassPrecision is the share of correct passes as a percentage with one
// decimal. It is 0 when no pass was attempted.
func PassPrecision(st stats.Raw) float64 {
	return precision(st.CorrectPasses, st.IncorrectPasses)
}

// ShotPrecision is the share of successful shots as a percentage with one
// decimal. It is 0 when no shot was attempted.
func ShotPrecision(st stats.Raw) float64 {
	return precision(st.SuccessfulShots, st.UnsuccessfulShots)
}

func precision(made, missed int) float64 {
	total := made + missed
	if total <= 0 {
		return 0
	}
	return roundTo(float64(made)/float64(total)*maxScoreValue, percentDigits)
}

// IsGoalkeeper decides whether the goalkeeper panels apply. Any keeper-only
// evidence in the record counts, whatever the position code says.
func IsGoalkeeper(st stats.Raw, code profile.Position) bool {
	return code == profile.Goalkeeper || st.Saves > 0 || st.GoalsConceded > 0
}
