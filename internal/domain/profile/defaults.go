package profile

import "github.com/okian/scout/internal/domain/stats"

func passSeries() []Series {
	return []Series{
		{Stat: stats.CorrectPasses, Label: "P.Cert", Tone: ToneSuccess},
		{Stat: stats.IncorrectPasses, Label: "Passes errados", Tone: ToneError},
	}
}

// canonicalProfiles returns the hand-authored table. Each call builds fresh
// slices.
func canonicalProfiles() map[Position]Profile {
	return map[Position]Profile{
		Goalkeeper: {
			Radar: []Metric{
				{Stat: stats.MatchesPlayed, Label: "Partidas", Ceiling: 38, Weight: 1},
				{Stat: stats.Saves, Label: "Defesas", Ceiling: 150, Weight: 2},
				{Stat: stats.GoalsConceded, Label: "Gols sofridos", Ceiling: 20, Weight: 2, Invert: true},
				{Stat: stats.PenaltiesSaved, Label: "Pênaltis salvos", Ceiling: 5, Weight: 1.5},
				{Stat: stats.HighClaims, Label: "Cruzamentos", Ceiling: 50, Weight: 1},
			},
			Pie: []Series{
				{Stat: stats.Saves, Label: "Defesas", Tone: ToneSuccess},
				{Stat: stats.GoalsConceded, Label: "Gols sofridos", Tone: ToneError},
			},
			Bar: []Series{
				{Stat: stats.PenaltiesFaced, Label: "Enfrentados", Tone: ToneError},
				{Stat: stats.PenaltiesSaved, Label: "Defendidos", Tone: ToneSuccess},
			},
			BarTitle: "Pênaltis",
		},
		CentreBack: {
			Radar: []Metric{
				{Stat: stats.MatchesPlayed, Label: "Partidas", Ceiling: 38, Weight: 1},
				{Stat: stats.Interceptions, Label: "Intercep.", Ceiling: 100, Weight: 2},
				{Stat: stats.CorrectPasses, Label: "P.Cert", Ceiling: 400, Weight: 1},
				{Stat: stats.Goals, Label: "Gols", Ceiling: 5, Weight: 0.8},
				{Stat: stats.YellowCards, Label: "Cartão", Ceiling: 10, Weight: 1, Invert: true},
			},
			Pie:      passSeries(),
			Bar:      []Series{{Stat: stats.Interceptions, Label: "Intercep.", Tone: ToneSuccess}},
			BarTitle: "Interceptações",
		},
		HoldingMidfielder: {
			Radar: []Metric{
				{Stat: stats.MatchesPlayed, Label: "Partidas", Ceiling: 38, Weight: 1},
				{Stat: stats.Interceptions, Label: "Intercep.", Ceiling: 80, Weight: 1.5},
				{Stat: stats.CorrectPasses, Label: "P.Cert", Ceiling: 500, Weight: 1.5},
				{Stat: stats.Assists, Label: "Assistências", Ceiling: 10, Weight: 1.2},
				{Stat: stats.YellowCards, Label: "Amarelos", Ceiling: 12, Weight: 1, Invert: true},
			},
			Pie:      passSeries(),
			Bar:      []Series{{Stat: stats.Interceptions, Label: "Intercep.", Tone: ToneSuccess}},
			BarTitle: "Interceptações",
		},
		AttackingMidfielder: {
			Radar: []Metric{
				{Stat: stats.MatchesPlayed, Label: "Partidas", Ceiling: 38, Weight: 1},
				{Stat: stats.Assists, Label: "Assistências", Ceiling: 20, Weight: 2},
				{Stat: stats.Goals, Label: "Gols", Ceiling: 10, Weight: 1.5},
				{Stat: stats.Dribbles, Label: "Dribles", Ceiling: 60, Weight: 1},
				{Stat: stats.CorrectPasses, Label: "P.Cert", Ceiling: 450, Weight: 1.2},
			},
			Pie:      passSeries(),
			Bar:      []Series{{Stat: stats.Assists, Label: "Assistências", Tone: ToneSuccess}},
			BarTitle: "Assistências",
		},
		Forward: {
			Radar: []Metric{
				{Stat: stats.MatchesPlayed, Label: "Partidas", Ceiling: 38, Weight: 1},
				{Stat: stats.Goals, Label: "Gols", Ceiling: 35, Weight: 2},
				{Stat: stats.Assists, Label: "Assist.", Ceiling: 20, Weight: 1},
				{Stat: stats.SuccessfulShots, Label: "Fin. Certas", Ceiling: 100, Weight: 1.5},
				{Stat: stats.Dribbles, Label: "Dribles", Ceiling: 70, Weight: 1},
			},
			Pie: []Series{
				{Stat: stats.SuccessfulShots, Label: "Certas", Tone: ToneSuccess},
				{Stat: stats.UnsuccessfulShots, Label: "Erradas", Tone: ToneError},
			},
			Bar: []Series{
				{Stat: stats.SuccessfulShots, Label: "Certas", Tone: ToneSuccess},
				{Stat: stats.UnsuccessfulShots, Label: "Erradas", Tone: ToneError},
			},
			BarTitle: "Finalizações",
		},
	}
}

// canonicalAliases maps secondary codes onto the profile they reuse.
func canonicalAliases() map[Position]Position {
	return map[Position]Position{
		LeftWinger:    Forward,
		RightWinger:   Forward,
		SecondStriker: Forward,
		FullBack:      CentreBack,
	}
}
