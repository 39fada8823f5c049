// Package stats defines the raw per-player counting statistics consumed by
// the scoring engine.
package stats

// Key names a single counter on a Raw record.
type Key string

// Stat keys. The string values match the column names used by the stats
// tables upstream.
const (
	MatchesPlayed     Key = "matches_played"
	Goals             Key = "goals"
	Assists           Key = "assists"
	YellowCards       Key = "yellow_cards"
	RedCards          Key = "red_cards"
	CorrectPasses     Key = "correct_passes"
	IncorrectPasses   Key = "incorrect_passes"
	SuccessfulShots   Key = "successful_shots"
	UnsuccessfulShots Key = "unsuccessful_shots"
	Interceptions     Key = "interceptions"
	Dribbles          Key = "dribbles"

	// Goalkeeper-only counters.
	GoalsConceded  Key = "goals_conceded"
	Saves          Key = "saves"
	CleanSheets    Key = "clean_sheets"
	PenaltiesSaved Key = "penalties_saved"
	PenaltiesFaced Key = "penalties_faced"
	HighClaims     Key = "high_claims"
)

// Keys lists every known key in record order.
func Keys() []Key {
	return []Key{
		MatchesPlayed, Goals, Assists, YellowCards, RedCards,
		CorrectPasses, IncorrectPasses, SuccessfulShots, UnsuccessfulShots,
		Interceptions, Dribbles,
		GoalsConceded, Saves, CleanSheets, PenaltiesSaved, PenaltiesFaced, HighClaims,
	}
}

// Valid reports whether k is one of the known keys.
func (k Key) Valid() bool {
	for _, known := range Keys() {
		if k == known {
			return true
		}
	}
	return false
}

// Raw is a season's worth of counters for one player. All values are
// expected to be non-negative. The engine does not enforce it; batch intake
// rejects negative counters through the validate tags. Goalkeeper
// counters are usually absent for outfield players and read as zero.
type Raw struct {
	MatchesPlayed     int `json:"matches_played" koanf:"matches_played" validate:"gte=0"`
	Goals             int `json:"goals" koanf:"goals" validate:"gte=0"`
	Assists           int `json:"assists" koanf:"assists" validate:"gte=0"`
	YellowCards       int `json:"yellow_cards" koanf:"yellow_cards" validate:"gte=0"`
	RedCards          int `json:"red_cards" koanf:"red_cards" validate:"gte=0"`
	CorrectPasses     int `json:"correct_passes" koanf:"correct_passes" validate:"gte=0"`
	IncorrectPasses   int `json:"incorrect_passes" koanf:"incorrect_passes" validate:"gte=0"`
	SuccessfulShots   int `json:"successful_shots" koanf:"successful_shots" validate:"gte=0"`
	UnsuccessfulShots int `json:"unsuccessful_shots" koanf:"unsuccessful_shots" validate:"gte=0"`
	Interceptions     int `json:"interceptions" koanf:"interceptions" validate:"gte=0"`
	Dribbles          int `json:"dribbles" koanf:"dribbles" validate:"gte=0"`

	GoalsConceded  int `json:"goals_conceded,omitempty" koanf:"goals_conceded" validate:"gte=0"`
	Saves          int `json:"saves,omitempty" koanf:"saves" validate:"gte=0"`
	CleanSheets    int `json:"clean_sheets,omitempty" koanf:"clean_sheets" validate:"gte=0"`
	PenaltiesSaved int `json:"penalties_saved,omitempty" koanf:"penalties_saved" validate:"gte=0"`
	PenaltiesFaced int `json:"penalties_faced,omitempty" koanf:"penalties_faced" validate:"gte=0"`
	HighClaims     int `json:"high_claims,omitempty" koanf:"high_claims" validate:"gte=0"`
}

// Value returns the counter for k as a float64. Unknown keys read as zero.
func (r Raw) Value(k Key) float64 {
	switch k {
	case MatchesPlayed:
		return float64(r.MatchesPlayed)
	case Goals:
		return float64(r.Goals)
	case Assists:
		return float64(r.Assists)
	case YellowCards:
		return float64(r.YellowCards)
	case RedCards:
		return float64(r.RedCards)
	case CorrectPasses:
		return float64(r.CorrectPasses)
	case IncorrectPasses:
		return float64(r.IncorrectPasses)
	case SuccessfulShots:
		return float64(r.SuccessfulShots)
	case UnsuccessfulShots:
		return float64(r.UnsuccessfulShots)
	case Interceptions:
		return float64(r.Interceptions)
	case Dribbles:
		return float64(r.Dribbles)
	case GoalsConceded:
		return float64(r.GoalsConceded)
	case Saves:
		return float64(r.Saves)
	case CleanSheets:
		return float64(r.CleanSheets)
	case PenaltiesSaved:
		return float64(r.PenaltiesSaved)
	case PenaltiesFaced:
		return float64(r.PenaltiesFaced)
	case HighClaims:
		return float64(r.HighClaims)
	default:
		return 0
	}
}
